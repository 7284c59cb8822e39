// ABOUTME: CLI command for listing activity levels and fitness goals.
// ABOUTME: Shows the ids accepted by --activity and --goal.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List activity levels and fitness goals",
	Long: `List the activity levels and fitness goals accepted by --activity and --goal.

Activity levels scale BMR into TDEE. Fitness goals adjust calories and set
the protein/carbs/fat split.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogJSON {
			return printJSON(map[string]interface{}{
				"activity_levels": catalog.ActivityLevels(),
				"fitness_goals":   catalog.FitnessGoals(),
			})
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Println("Activity levels")
		for _, a := range catalog.ActivityLevels() {
			fmt.Printf("  %s x%.3f  %s\n", padRight(a.ID, 18), a.Multiplier, faint.Sprint(a.Description))
		}
		fmt.Println()

		bold.Println("Fitness goals")
		for _, g := range catalog.FitnessGoals() {
			fmt.Printf("  %s %+4.0f%%  P%2.0f/C%2.0f/F%2.0f  %s\n",
				padRight(g.ID, 16), g.CalorieAdjustment*100,
				g.ProteinRatio*100, g.CarbRatio*100, g.FatRatio*100,
				faint.Sprint(g.Description))
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}
