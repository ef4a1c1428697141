package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/MacroPower/attrkit/internal/version"
	"github.com/MacroPower/attrkit/pkg/config"
	"github.com/MacroPower/attrkit/pkg/log"
)

var ErrInvalidArgument = errors.New("invalid argument")

// NewRootCmd returns the root command. Flag defaults are taken from the
// ATTRKIT_* environment variables.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cfg, cfgErr := config.FromEnv()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	cmd.PersistentFlags().String("log_level", cfg.LogLevel, "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", cfg.LogFormat, "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		if cfgErr != nil {
			slog.Warn("ignoring environment configuration", slog.Any("err", cfgErr))
		}

		return nil
	}

	cmd.AddCommand(NewNormalizeCmd(cfg))
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
