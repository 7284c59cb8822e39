// ABOUTME: CLI command for showing a saved plan.
// ABOUTME: Accepts a full ID, an ID prefix, or "latest".
package main

import (
	"fmt"

	"github.com/harperreed/nutriplan/internal/models"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id|latest>",
	Short: "Show a saved plan",
	Long: `Show a saved plan with its metrics, targets, meals and schedule.

EXAMPLES:

  nutriplan show abc12345        # By 8-char prefix
  nutriplan show latest          # Most recent plan
  nutriplan show abc1 --json     # Full plan as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := lookupPlan(args[0])
		if err != nil {
			return err
		}

		if showJSON {
			return printJSON(plan)
		}

		printPlan(plan)
		fmt.Println()
		printSchedule(&plan.Schedule)
		return nil
	},
}

// lookupPlan resolves an ID, prefix or "latest".
func lookupPlan(idOrPrefix string) (*models.Plan, error) {
	if idOrPrefix == "latest" {
		plan, err := repo.GetLatestPlan()
		if err != nil {
			return nil, fmt.Errorf("no saved plans: %w", err)
		}
		return plan, nil
	}

	plan, err := repo.GetPlan(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("plan not found: %w", err)
	}
	return plan, nil
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the plan as JSON")
	rootCmd.AddCommand(showCmd)
}
