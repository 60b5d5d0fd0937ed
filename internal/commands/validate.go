package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statement-engine/internal/core"
)

func newValidateCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "validate <statement.json> [more.json...]",
		Short: "Run cross-checks against generated statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statements := make([]*core.Statement, 0, len(args))
			for _, path := range args {
				st, err := readStatement(path)
				if err != nil {
					return err
				}
				statements = append(statements, st)
			}

			ctx := cmd.Context()
			d, err := buildDeps(ctx, catalogPath, false)
			if err != nil {
				return err
			}
			defer d.close()

			var out any
			if len(statements) == 1 {
				out, err = d.service.ValidateStatement(ctx, statements[0])
			} else {
				out, err = d.service.ValidateAll(ctx, statements)
			}
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "mapping catalog file (defaults to CATALOG_PATH)")

	return cmd
}

// readStatement accepts either a bare statement document or the generate
// command's output envelope.
func readStatement(path string) (*core.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var envelope struct {
		Statement *core.Statement `json:"statement"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Statement != nil {
		return envelope.Statement, nil
	}

	var st core.Statement
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &st, nil
}
