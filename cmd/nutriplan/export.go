// ABOUTME: CLI commands for backing up and restoring saved plans.
// ABOUTME: export renders json, yaml or markdown; import restores a json export.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportGoal   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export saved plans",
	Long: `Export saved plans as json, yaml or markdown.

  json       Every plan in full; restore it with 'nutriplan import'
  yaml       Plan summaries grouped by fitness goal
  markdown   One section per plan with macro and meal tables

--goal and --since narrow the markdown export. Output goes to stdout unless
--output is set.

EXAMPLES:

  nutriplan export json -o backup.json
  nutriplan export yaml
  nutriplan export markdown --goal build_muscle --since 2025-06-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := renderExport(args[0])
		if err != nil {
			return err
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func renderExport(format string) ([]byte, error) {
	switch format {
	case "json":
		return storage.ExportJSON(repo)
	case "yaml":
		return storage.ExportYAML(repo)
	case "markdown":
		goal, since, err := markdownFilters()
		if err != nil {
			return nil, err
		}
		md, err := storage.ExportMarkdown(repo, goal, since)
		if err != nil {
			return nil, fmt.Errorf("export markdown: %w", err)
		}
		return []byte(md), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, yaml or markdown)", format)
	}
}

func markdownFilters() (*string, *time.Time, error) {
	var goal *string
	if exportGoal != "" {
		if !catalog.IsValidFitnessGoal(exportGoal) {
			return nil, nil, fmt.Errorf("unknown fitness goal: %s", exportGoal)
		}
		goal = &exportGoal
	}

	var since *time.Time
	if exportSince != "" {
		t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --since %q (use YYYY-MM-DD)", exportSince)
		}
		since = &t
	}
	return goal, since, nil
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore plans from a json export",
	Long: `Restore plans written by 'nutriplan export json'.

Plans keep their IDs; importing a plan that already exists fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		color.Green("✓ Imported %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVarP(&exportGoal, "goal", "g", "", "only plans with this fitness goal (markdown)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only plans created on or after YYYY-MM-DD (markdown)")

	rootCmd.AddCommand(exportCmd, importCmd)
}
