// ABOUTME: CLI command for listing saved plans.
// ABOUTME: Supports filtering by fitness goal and limiting results.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	listGoal  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List saved plans",
	Long: `List saved nutrition plans, newest first.

OUTPUT FORMAT:

  Each line shows: ID  CREATED  GOAL  CALORIES  MEALS  NAME

  The ID is an 8-character prefix you can use with show, delete, report
  and remind.

EXAMPLES:

  nutriplan list                      # Show last 20 plans
  nutriplan list --goal lose_weight   # Only weight loss plans
  nutriplan list -n 50                # Show up to 50 plans`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var goal *string
		if listGoal != "" {
			if !catalog.IsValidFitnessGoal(listGoal) {
				return fmt.Errorf("unknown fitness goal: %s", listGoal)
			}
			goal = &listGoal
		}

		plans, err := repo.ListPlans(goal, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}

		if len(plans) == 0 {
			fmt.Println("No plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			fmt.Printf("%s %s %s %5d kcal %2d meals  %s\n",
				faint.Sprint(p.ShortID()),
				faint.Sprint(p.CreatedAt.Local().Format("2006-01-02 15:04")),
				padRight(p.Profile.FitnessGoal, 16),
				p.Targets.TotalCalories,
				p.Profile.MealsPerDay,
				truncate(p.Name, 30))
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	listCmd.Flags().StringVarP(&listGoal, "goal", "g", "", "filter by fitness goal")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
