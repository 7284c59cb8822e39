// ABOUTME: Per-meal timing and calorie split for a profile's eating occasions.
// ABOUTME: Meal types and shares come from fixed tables keyed by meals per day.
package calculator

import (
	"slices"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
)

// Half-widths of the eating window around a recommended time, in minutes.
const (
	mealWindowMinutes  = 30
	snackWindowMinutes = 15
)

type mealSlot struct {
	mealType models.MealType
	percent  int
}

// mealSplits maps meals per day to the meal types and calorie shares used.
var mealSplits = map[int][]mealSlot{
	1: {{models.MealLunch, 100}},
	2: {{models.MealBreakfast, 40}, {models.MealDinner, 60}},
	3: {{models.MealBreakfast, 30}, {models.MealLunch, 40}, {models.MealDinner, 30}},
	4: {
		{models.MealBreakfast, 25}, {models.MealLunch, 35},
		{models.MealAfternoonSnack, 10}, {models.MealDinner, 30},
	},
	5: {
		{models.MealBreakfast, 25}, {models.MealMorningSnack, 10}, {models.MealLunch, 30},
		{models.MealAfternoonSnack, 10}, {models.MealDinner, 25},
	},
	6: {
		{models.MealBreakfast, 20}, {models.MealMorningSnack, 10}, {models.MealLunch, 30},
		{models.MealAfternoonSnack, 10}, {models.MealDinner, 25}, {models.MealEveningSnack, 5},
	},
}

type mealGuide struct {
	macroFocus []string
	categories []string
	reasoning  string
}

var mealGuides = map[models.MealType]mealGuide{
	models.MealBreakfast: {
		macroFocus: []string{"carbs", "protein"},
		categories: []string{"whole grains", "fruits", "eggs", "dairy"},
		reasoning:  "Breaks the overnight fast and refuels glycogen for the morning.",
	},
	models.MealLunch: {
		macroFocus: []string{"protein", "carbs", "fat"},
		categories: []string{"lean proteins", "whole grains", "vegetables"},
		reasoning:  "Sustains energy through the afternoon when metabolism is most active.",
	},
	models.MealDinner: {
		macroFocus: []string{"protein", "fat"},
		categories: []string{"lean proteins", "vegetables", "healthy fats"},
		reasoning:  "Supports overnight recovery with protein and lighter carbohydrates.",
	},
	models.MealMorningSnack: {
		macroFocus: []string{"carbs", "fiber"},
		categories: []string{"fruits", "nuts"},
		reasoning:  "Bridges breakfast and lunch to keep blood sugar steady.",
	},
	models.MealAfternoonSnack: {
		macroFocus: []string{"protein", "fiber"},
		categories: []string{"yogurt", "vegetables", "nuts"},
		reasoning:  "Prevents the late afternoon energy dip and overeating at dinner.",
	},
	models.MealEveningSnack: {
		macroFocus: []string{"protein"},
		categories: []string{"cottage cheese", "nuts"},
		reasoning:  "A light protein source supports overnight muscle repair.",
	},
	models.MealSnack: {
		macroFocus: []string{"protein", "carbs"},
		categories: []string{"fruits", "nuts", "yogurt"},
		reasoning:  "Keeps energy and hunger stable between main meals.",
	},
}

// mealSlots returns the meal types and calorie shares for count meals. Counts
// beyond the fixed tables open with breakfast, close with dinner and fill the
// middle with snacks, splitting evenly with the remainder going to the
// earliest meals.
func mealSlots(count int) []mealSlot {
	if slots, ok := mealSplits[count]; ok {
		return slots
	}
	if count <= 0 {
		return nil
	}

	base, extra := 100/count, 100%count
	slots := make([]mealSlot, count)
	for i := range slots {
		mt := models.MealSnack
		switch i {
		case 0:
			mt = models.MealBreakfast
		case count - 1:
			mt = models.MealDinner
		}
		pct := base
		if i < extra {
			pct++
		}
		slots[i] = mealSlot{mealType: mt, percent: pct}
	}
	return slots
}

// MealTimings lays out one MealTiming per meal at the distributed meal times,
// sized from the calorie targets.
func (c *Calculator) MealTimings(profile *models.HealthProfile, targets *models.NutritionTargets) []models.MealTiming {
	window := profile.Window()
	offsets := window.Distribute(profile.MealsPerDay)
	slots := mealSlots(profile.MealsPerDay)
	proteinFirst := profile.FitnessGoal == catalog.BuildMuscle || profile.FitnessGoal == catalog.GainWeight

	timings := make([]models.MealTiming, 0, len(slots))
	for i, slot := range slots {
		off := offsets[i]
		half := mealWindowMinutes
		if slot.mealType.IsSnack() {
			half = snackWindowMinutes
		}
		guide := mealGuides[slot.mealType]

		focus := slices.Clone(guide.macroFocus)
		if proteinFirst {
			focus = promoteProtein(focus)
		}

		timings = append(timings, models.MealTiming{
			MealType:        slot.mealType,
			RecommendedTime: window.At(off),
			TimeWindow: clock.Range{
				Start: window.ClampAt(off - half),
				End:   window.ClampAt(off + half),
			},
			CaloriePercentage: slot.percent,
			Calories:          roundInt(float64(targets.TotalCalories) * float64(slot.percent) / 100),
			MacroFocus:        focus,
			FoodCategories:    slices.Clone(guide.categories),
			Reasoning:         guide.reasoning,
		})
	}
	return timings
}

// promoteProtein moves "protein" to the front, adding it if absent.
func promoteProtein(focus []string) []string {
	out := []string{"protein"}
	for _, f := range focus {
		if f != "protein" {
			out = append(out, f)
		}
	}
	return out
}
