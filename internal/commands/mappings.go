package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statement-engine/internal/config"
	"statement-engine/internal/core"
	"statement-engine/internal/db"
	"statement-engine/internal/postgres"
)

func newMappingsCommand() *cobra.Command {
	mappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage the account-to-line mapping catalog",
	}
	mappingsCmd.AddCommand(newMappingsSeedCommand())
	mappingsCmd.AddCommand(newMappingsListCommand())
	mappingsCmd.AddCommand(newMappingsExportCommand())
	return mappingsCmd
}

func withMappingStore(ctx context.Context, fn func(*postgres.MappingStore) error) error {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	return fn(postgres.NewMappingStore(pool))
}

func newMappingsSeedCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the mapping catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings := core.DefaultMappings()
			if catalogPath != "" {
				var err error
				mappings, err = config.LoadCatalog(catalogPath)
				if err != nil {
					return err
				}
			}

			return withMappingStore(cmd.Context(), func(store *postgres.MappingStore) error {
				inserted, err := store.Seed(cmd.Context(), mappings)
				if err != nil {
					return fmt.Errorf("seeding mappings: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d mappings (existing line codes left untouched)\n", inserted, len(mappings))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "seed from a catalog file instead of the built-in defaults")

	return cmd
}

func newMappingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the mappings stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMappingStore(cmd.Context(), func(store *postgres.MappingStore) error {
				mappings, err := store.ListAll(cmd.Context())
				if err != nil {
					return fmt.Errorf("listing mappings: %w", err)
				}
				data, err := json.MarshalIndent(mappings, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding mappings: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

func newMappingsExportCommand() *cobra.Command {
	var (
		outPath string
		fromDB  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the mapping catalog to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings := core.DefaultMappings()
			if fromDB {
				err := withMappingStore(cmd.Context(), func(store *postgres.MappingStore) error {
					var err error
					mappings, err = store.ListAll(cmd.Context())
					return err
				})
				if err != nil {
					return fmt.Errorf("listing mappings: %w", err)
				}
			}

			if err := config.SaveCatalog(outPath, mappings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d mappings to %s\n", len(mappings), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "catalog.yaml", "destination file")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "export the database catalog instead of the built-in defaults")

	return cmd
}
