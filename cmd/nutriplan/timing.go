// ABOUTME: CLI command for the meal timing schedule.
// ABOUTME: Prints meal and snack times, category timing, hydration, tips and fasting.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/scheduler"
	"github.com/spf13/cobra"
)

var (
	timingFlags profileFlags
	timingJSON  bool
)

var timingCmd = &cobra.Command{
	Use:   "timing",
	Short: "Generate a meal timing schedule",
	Long: `Generate a day schedule from a profile: evenly spaced meals across your
waking hours, snacks for long gaps, the best times for each food category,
a hydration schedule, metabolism tips and a 16:8 fasting window.

Overnight schedules work: a wake time after the bed time means you sleep
during the day.

EXAMPLES:

  nutriplan timing --height 175 --weight 70 --age 30 \
    -a very_active -g build_muscle --wake 06:00 --bed 22:00
  nutriplan timing ... --meals 5 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := timingFlags.request().Profile()
		if err != nil {
			return err
		}

		rec := scheduler.GenerateMealTiming(profile)
		if timingJSON {
			return printJSON(rec)
		}

		printSchedule(rec)
		return nil
	},
}

func joinTimes(times []clock.Time) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func printSchedule(rec *models.MealTimingRecommendation) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Println("Meals")
	fmt.Printf("  %s\n", joinTimes(rec.MealTimes))
	if len(rec.SnackTimes) > 0 {
		fmt.Printf("  %s %s\n", faint.Sprint("snacks"), joinTimes(rec.SnackTimes))
	}
	fmt.Println()

	bold.Println("Best times by food")
	for _, cat := range models.FoodCategories {
		ct := rec.CategoryTiming[cat]
		fmt.Printf("  %s %s\n", padRight(string(cat), 14), joinTimes(ct.BestTimes))
		fmt.Printf("  %s\n", faint.Sprint(ct.Reasoning))
	}
	fmt.Println()

	bold.Println("Hydration")
	for _, h := range rec.HydrationSchedule {
		fmt.Printf("  %s %s %s\n", h.Time, padRight(h.Amount, 9), faint.Sprint(h.Note))
	}
	fmt.Println()

	bold.Println("Tips")
	for _, tip := range rec.MetabolismTips {
		fmt.Printf("  • %s\n", tip)
	}

	if fw := rec.FastingWindow; fw != nil {
		fmt.Println()
		bold.Println("Fasting")
		label := "optional"
		if fw.Recommended {
			label = "recommended"
		}
		fmt.Printf("  %d:%d, eat %s-%s (%s)\n", fw.DurationHours, fw.EatingHours, fw.Start, fw.End, label)
	}
}

func init() {
	timingFlags.bind(timingCmd)
	timingCmd.Flags().BoolVar(&timingJSON, "json", false, "print the schedule as JSON")
	rootCmd.AddCommand(timingCmd)
}
