// ABOUTME: CLI command for calculating a nutrition plan.
// ABOUTME: Prints metrics, targets and meals, optionally saving the plan.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/spf13/cobra"
)

var (
	planFlags profileFlags
	planSave  bool
	planJSON  bool
	planNotes string
)

var planCmd = &cobra.Command{
	Use:     "plan [name]",
	Aliases: []string{"p"},
	Short:   "Calculate nutrition targets and meal timings",
	Long: `Calculate a full nutrition plan for a profile.

The plan includes BMI, BMR, TDEE, water needs, a health score with
recommendations, daily calorie and macro targets, meal timings and shopping
focus areas. Wake time, bed time and meals per day default to the values in
your config.

REQUIRED FLAGS:

  --height, --weight, --age, --activity, --goal

EXAMPLES:

  nutriplan plan --height 175 --weight 70 --age 30 --sex male \
    --activity moderately_active --goal maintain_weight
  nutriplan plan "cut" --height 165 --weight 68 --age 41 --sex female \
    -a lightly_active -g lose_weight --meals 4 --save
  nutriplan p ... --json            # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		plan, err := newPlanner().Build(planFlags.request(), name)
		if err != nil {
			return err
		}
		if planNotes != "" {
			plan.WithNotes(planNotes)
		}

		if planSave {
			if err := repo.CreatePlan(plan); err != nil {
				return fmt.Errorf("failed to save plan: %w", err)
			}
		}

		if planJSON {
			return printJSON(plan)
		}

		printPlan(plan)
		if planSave {
			fmt.Println()
			color.Green("✓ Saved plan %s", plan.DisplayName())
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(plan.ShortID()))
		}
		return nil
	},
}

func printPlan(p *models.Plan) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	m := p.Metrics
	t := p.Targets

	bold.Printf("%s\n", p.DisplayName())
	fmt.Printf("  %s %s, %s, %d meals, awake %s-%s\n",
		faint.Sprint("profile"), p.Profile.FitnessGoal, p.Profile.ActivityLevel,
		p.Profile.MealsPerDay, p.Profile.WakeTime, p.Profile.SleepTime)
	fmt.Println()

	bold.Println("Metrics")
	fmt.Printf("  BMI          %.1f (%s)\n", m.BMI, m.BMICategory)
	fmt.Printf("  BMR          %.0f kcal\n", m.BMR)
	fmt.Printf("  TDEE         %.0f kcal\n", m.TDEE)
	fmt.Printf("  Water        %.1f L\n", m.WaterNeed)
	fmt.Printf("  Ideal weight %.1f-%.1f kg\n", m.IdealWeight.Min, m.IdealWeight.Max)
	fmt.Printf("  Health score %s\n", scoreColor(m.HealthScore).Sprintf("%d/100", m.HealthScore))
	fmt.Println()

	bold.Printf("Targets  %d kcal\n", t.TotalCalories)
	for _, row := range []struct {
		name string
		mt   models.MacroTarget
	}{
		{"Protein", t.Protein},
		{"Carbs", t.Carbs},
		{"Fat", t.Fat},
	} {
		fmt.Printf("  %s %4d g  %4d kcal  %s\n", padRight(row.name, 8), row.mt.Grams, row.mt.Calories, faint.Sprintf("%d%%", row.mt.Percentage))
	}
	fmt.Printf("  %s %4d g\n", padRight("Fiber", 8), t.Fiber)
	fmt.Println()

	bold.Println("Meals")
	for _, mt := range p.MealTimings {
		fmt.Printf("  %s %s %s %4d kcal  %s\n",
			mt.RecommendedTime,
			faint.Sprint(mt.TimeWindow),
			padRight(string(mt.MealType), 16),
			mt.Calories,
			faint.Sprint(strings.Join(mt.MacroFocus, ", ")))
	}

	if len(m.Recommendations) > 0 {
		fmt.Println()
		bold.Println("Recommendations")
		for _, r := range m.Recommendations {
			fmt.Printf("  • %s\n", r)
		}
	}

	if len(p.Shopping.PriorityItems) > 0 {
		fmt.Println()
		bold.Println("Shopping focus")
		for _, f := range p.Shopping.FocusAreas {
			fmt.Printf("  %s %3d%%\n", padRight(f.Category, 10), f.Percentage)
		}
		for _, item := range p.Shopping.PriorityItems {
			fmt.Printf("  • %s\n", item)
		}
	}

	if p.Notes != nil && *p.Notes != "" {
		fmt.Println()
		fmt.Println(faint.Sprint(*p.Notes))
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 60:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func init() {
	planFlags.bind(planCmd)
	planCmd.Flags().BoolVarP(&planSave, "save", "s", false, "save the plan")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the plan as JSON")
	planCmd.Flags().StringVar(&planNotes, "notes", "", "notes stored with the plan")
	rootCmd.AddCommand(planCmd)
}
