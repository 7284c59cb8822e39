// ABOUTME: CLI command for deleting saved plans.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a saved plan",
	Long: `Delete a saved plan by its ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'nutriplan list' output.

EXAMPLES:

  nutriplan delete abc12345                    # Delete by 8-char prefix
  nutriplan delete abc12345-1234-1234-...      # Delete by full UUID
  nutriplan rm abc1                            # Short prefix (if unique)

CAUTION:

  This permanently deletes the plan. There is no undo.
  If the prefix matches multiple plans, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := args[0]

		plan, err := repo.GetPlan(idOrPrefix)
		if err != nil {
			return fmt.Errorf("plan not found: %w", err)
		}

		if err := repo.DeletePlan(plan.ID.String()); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}

		color.Yellow("✗ Deleted %s", plan.DisplayName())
		fmt.Printf("  %s %d kcal\n",
			color.New(color.Faint).Sprint(plan.ShortID()),
			plan.Targets.TotalCalories)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
