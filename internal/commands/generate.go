package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statement-engine/internal/app"
)

func newGenerateCommand() *cobra.Command {
	var (
		statementName string
		systemName    string
		country       string
		standard      string
		cutoffValue   string
		catalogPath   string
		outPath       string
		save          bool
		lenient       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a financial statement at a cutoff date",
		RunE: func(cmd *cobra.Command, args []string) error {
			statementType, err := parseStatementType(statementName)
			if err != nil {
				return err
			}
			system, err := parseSystem(systemName)
			if err != nil {
				return err
			}
			cutoff, err := parseCutoff(cutoffValue)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			d, err := buildDeps(ctx, catalogPath, lenient)
			if err != nil {
				return err
			}
			defer d.close()

			if country == "" {
				country = d.cfg.CountryCode
			}
			if standard == "" {
				standard = d.cfg.Standard
			}

			result, err := d.service.GenerateStatement(ctx, app.GenerateRequest{
				CountryCode: country,
				Standard:    standard,
				System:      system,
				Statement:   statementType,
				CutoffDate:  cutoff,
				Persist:     save,
			})
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding statement: %w", err)
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "statement written to %s\n", outPath)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			if result.Reference != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "saved as %s\n", result.Reference)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statementName, "type", "balance-sheet", "statement type to generate")
	cmd.Flags().StringVar(&systemName, "system", "normal", "reporting system (normal or minimal)")
	cmd.Flags().StringVar(&country, "country", "", "country code (defaults to COUNTRY_CODE)")
	cmd.Flags().StringVar(&standard, "standard", "", "accounting standard (defaults to ACCOUNTING_STANDARD)")
	cmd.Flags().StringVar(&cutoffValue, "cutoff", "", "cutoff date, YYYY-MM-DD")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "mapping catalog file (defaults to CATALOG_PATH)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the statement to a file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "persist the generated statement")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "treat ledger read failures as zero balances")
	_ = cmd.MarkFlagRequired("cutoff")

	return cmd
}
