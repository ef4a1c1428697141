package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MacroPower/attrkit/pkg/catalog"
	"github.com/MacroPower/attrkit/pkg/config"
	"github.com/MacroPower/attrkit/pkg/deref"
	"github.com/MacroPower/attrkit/pkg/element"
	"github.com/MacroPower/attrkit/pkg/normalize"
	"github.com/MacroPower/attrkit/pkg/outline"
	"github.com/MacroPower/attrkit/pkg/source"
	"github.com/MacroPower/attrkit/pkg/theme"
)

const (
	normalizeDesc = `Resolve references to named data structures and filter inherited and
included members, then print the resulting element trees.

Inputs are JSON or YAML element trees, optionally gzip compressed. Use "-" to
read from stdin.
`
	normalizeExample = `  # Resolve references against a set of structures
  attrkit normalize -s structures.json request.json

  # Hide inherited members and print an outline
  attrkit normalize -s structures.json --show_inherited=false -o outline request.json

  # Select the root element inside a larger document
  attrkit normalize --pointer /content/0 result.json
`
)

const (
	outputJSON    = "json"
	outputYAML    = "yaml"
	outputOutline = "outline"
)

var outputFormats = []string{outputJSON, outputYAML, outputOutline}

type normalizeArgs struct {
	pointer       string
	themePath     string
	output        string
	structures    []string
	showInherited bool
	showIncluded  bool
	strict        bool
	inheritance   bool
	mixins        bool
	assignIDs     bool
}

// NewNormalizeCmd returns the normalize command. Defaults are taken from cfg.
func NewNormalizeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalize [files...]",
		Short:   "Normalize element trees",
		Long:    normalizeDesc,
		Example: normalizeExample,
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := getNormalizeArgs(cc)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			if n := countStdin(args); n > 1 {
				return fmt.Errorf("%w: stdin (\"-\") given %d times, at most once is allowed", ErrInvalidArgument, n)
			}

			return runNormalize(cc, a, args)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringSliceP("structures", "s", nil, "Files holding named data structures")
	cmd.Flags().String("pointer", "", "JSON pointer selecting the root element in each input")
	cmd.Flags().Bool("show_inherited", cfg.ShowInherited, "Keep members inherited from base types")
	cmd.Flags().Bool("show_included", cfg.ShowIncluded, "Keep members included from mixins")
	cmd.Flags().Bool("strict", false, "Fail on references to unknown structures")
	cmd.Flags().Bool("inheritance", false, "Merge base type members into derived types")
	cmd.Flags().Bool("mixins", false, "Expand mixin references into their members")
	cmd.Flags().Bool("assign_ids", false, "Give every element a unique id")
	cmd.Flags().String("theme", cfg.Theme, "YAML file overriding the default theme")
	cmd.Flags().StringP("output", "o", outputJSON, "Output format (json, yaml, outline)")

	return cmd
}

func getNormalizeArgs(cc *cobra.Command) (*normalizeArgs, error) {
	var merr error

	flags := cc.Flags()
	a := &normalizeArgs{}

	var err error

	a.structures, err = flags.GetStringSlice("structures")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	a.pointer, err = flags.GetString("pointer")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	a.themePath, err = flags.GetString("theme")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	a.output, err = flags.GetString("output")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	for name, dst := range map[string]*bool{
		"show_inherited": &a.showInherited,
		"show_included":  &a.showIncluded,
		"strict":         &a.strict,
		"inheritance":    &a.inheritance,
		"mixins":         &a.mixins,
		"assign_ids":     &a.assignIDs,
	} {
		*dst, err = flags.GetBool(name)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if a.output != "" && !slices.Contains(outputFormats, a.output) {
		merr = multierror.Append(merr, fmt.Errorf("unknown output format %q, want one of %v", a.output, outputFormats))
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	return a, nil
}

func countStdin(paths []string) int {
	n := 0

	for _, p := range paths {
		if p == "-" {
			n++
		}
	}

	return n
}

func (a *normalizeArgs) options() (normalize.Options, error) {
	opts := normalize.Options{
		ShowInherited: &a.showInherited,
		ShowIncluded:  &a.showIncluded,
		AssignIDs:     a.assignIDs,
	}

	if a.strict {
		opts.Resolve = append(opts.Resolve, deref.WithStrict())
	}

	if a.inheritance {
		opts.Resolve = append(opts.Resolve, deref.WithInheritance())
	}

	if a.mixins {
		opts.Resolve = append(opts.Resolve, deref.WithMixins())
	}

	if a.themePath != "" {
		th, err := theme.Load(a.themePath)
		if err != nil {
			return normalize.Options{}, err //nolint:wrapcheck // Already wrapped.
		}

		opts.Theme = &th
	}

	return opts, nil
}

func runNormalize(cc *cobra.Command, a *normalizeArgs, paths []string) error {
	ctx := cc.Context()

	opts, err := a.options()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(ctx, a.structures...)
	if err != nil {
		return fmt.Errorf("load structures: %w", err)
	}

	slog.Debug("loaded structures", slog.Int("count", len(cat)))

	results := make([]*normalize.Result, len(paths))

	g, gCtx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			root, err := loadInput(cc.InOrStdin(), path, a.pointer)
			if err != nil {
				return err
			}

			res, err := normalize.Normalize(root, cat, opts)
			if errors.Is(err, normalize.ErrMissingRootElement) {
				return nil
			}

			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	return writeResults(cc.OutOrStdout(), a.output, results)
}

func loadInput(stdin io.Reader, path, pointer string) (*element.Element, error) {
	if path != "-" {
		return source.LoadElement(path, pointer) //nolint:wrapcheck // Already wrapped.
	}

	data, err := source.Read(stdin, source.DefaultMaxSize)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}

	e, err := source.DecodeElement(data, pointer)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}

	return e, nil
}

func writeResults(w io.Writer, format string, results []*normalize.Result) error {
	buf := &bytes.Buffer{}
	n := 0

	for _, res := range results {
		if res == nil {
			continue
		}

		switch format {
		case outputYAML:
			if n > 0 {
				buf.WriteString("---\n")
			}

			data, err := element.MarshalYAML(res.Element)
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}

			buf.Write(data)

		case outputOutline:
			if err := outline.New(w, res.Theme).Print(res.Element); err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

		default:
			data, err := json.MarshalIndent(res.Element, "", "  ")
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}

			buf.Write(data)
			buf.WriteByte('\n')
		}

		n++
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
