// ABOUTME: CLI command for migrating plans between storage backends.
// ABOUTME: Copies every plan from one backend to another without touching the source.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/config"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate plans between storage backends",
	Long: `Copy all saved plans from one storage backend to another.

BACKENDS:

  sqlite     <data_dir>/nutriplan.db
  markdown   <data_dir>/plans/YYYY/MM/*.md
  postgres   postgres_dsn from config

The source defaults to the configured backend. The destination must be empty
unless --force is given. The source is never modified; update "backend" in
your config afterwards to switch.

USAGE:

  nutriplan migrate --to markdown --dry-run   # Preview
  nutriplan migrate --to markdown             # Copy sqlite plans to markdown
  nutriplan migrate --from markdown --to postgres`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := migrateFrom
		if from == "" {
			from = cfg.GetBackend()
		}
		if migrateTo == "" {
			return fmt.Errorf("--to is required")
		}
		if from == migrateTo {
			return fmt.Errorf("source and destination are both %s", from)
		}

		src, err := cfg.OpenBackend(from)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		defer func() { _ = src.Close() }()

		plans, err := src.ListPlans(nil, 0)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", from, err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %d plans from %s to %s\n", len(plans), from, migrateTo)
			return nil
		}

		if !migrateForce {
			nonEmpty, err := destinationHasData(migrateTo)
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("%s already has data (use --force to merge, existing plans are skipped)", migrateTo)
			}
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d plans from %s to %s", summary.Plans, from, migrateTo)
		if summary.Skipped > 0 {
			fmt.Printf("  Skipped %d plans already in %s\n", summary.Skipped, migrateTo)
		}
		if migrateTo != cfg.GetBackend() {
			fmt.Printf("  Set \"backend\": %q in %s to use it.\n", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

// destinationHasData reports whether the destination backend already holds plans.
func destinationHasData(backend string) (bool, error) {
	if backend == config.BackendMarkdown {
		return storage.IsDirNonEmpty(filepath.Join(cfg.GetDataDir(), "plans"))
	}

	dst, err := cfg.OpenBackend(backend)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", backend, err)
	}
	defer func() { _ = dst.Close() }()

	plans, err := dst.ListPlans(nil, 1)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", backend, err)
	}
	return len(plans) > 0, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, markdown, postgres, charm)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "copy even if the destination has data")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
