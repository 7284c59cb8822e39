// ABOUTME: CLI command for rendering a saved plan as a PDF report.
// ABOUTME: Writes plan-<id>.pdf unless --output is given.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/report"
	"github.com/spf13/cobra"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report <id|latest>",
	Short: "Render a plan as PDF",
	Long: `Render a saved plan as a printable PDF with metrics, macro and meal
tables, the hydration schedule and shopping priorities.

EXAMPLES:

  nutriplan report abc12345                 # Writes plan-abc12345.pdf
  nutriplan report latest -o week1.pdf      # Custom output path`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := lookupPlan(args[0])
		if err != nil {
			return err
		}

		data, err := report.RenderPDF(plan)
		if err != nil {
			return err
		}

		out := reportOutput
		if out == "" {
			out = fmt.Sprintf("plan-%s.pdf", plan.ShortID())
		}
		if err := os.WriteFile(out, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}

		color.Green("✓ Wrote report to %s", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default: plan-<id>.pdf)")
	rootCmd.AddCommand(reportCmd)
}
