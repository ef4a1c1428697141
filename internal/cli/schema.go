package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/attrkit/pkg/jsonschema"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of attrkit documents",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(jsonschema.DocumentSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal json schema: %w", err)
			}

			if _, err := fmt.Fprintln(cc.OutOrStdout(), string(data)); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}
