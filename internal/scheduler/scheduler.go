// ABOUTME: Meal-timing scheduler building a day plan from wake and sleep times.
// ABOUTME: Places meals, snacks, category timing, hydration, tips and fasting.
package scheduler

import (
	"math"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
)

// Scheduling constants in minutes unless noted.
const (
	snackGapMinutes        = 240
	hydrationInterval      = 150
	preBedHydrationMinutes = 120
	preBedHydrationMinimum = 360

	eatingWindowDelay       = 180
	fastingHours            = 16
	eatingHours             = 8
	fastingRecommendMinimum = 14 * 60
)

// GenerateMealTiming builds the full meal-timing recommendation for a
// profile. It is deterministic and does not modify the profile.
func GenerateMealTiming(profile *models.HealthProfile) *models.MealTimingRecommendation {
	window := profile.Window()
	high := catalog.IsHighActivity(profile.ActivityLevel)

	offsets := window.Distribute(profile.MealsPerDay)

	required := 1
	if high {
		required = 2
	}

	return &models.MealTimingRecommendation{
		MealTimes:         window.Times(offsets),
		SnackTimes:        window.Times(snackOffsets(offsets, required)),
		CategoryTiming:    categoryTiming(window),
		HydrationSchedule: hydrationSchedule(window, high),
		MetabolismTips:    metabolismTips(profile.FitnessGoal, high),
		FastingWindow:     fastingWindow(window, profile.FitnessGoal),
	}
}

// snackOffsets returns the midpoints of gaps between consecutive meals longer
// than four hours, in chronological order, truncated to required. Fewer than
// two meals get no snacks.
func snackOffsets(meals []int, required int) []int {
	snacks := []int{}
	if len(meals) < 2 {
		return snacks
	}
	for i := 1; i < len(meals) && len(snacks) < required; i++ {
		if meals[i]-meals[i-1] > snackGapMinutes {
			snacks = append(snacks, int(math.Round(float64(meals[i-1]+meals[i])/2)))
		}
	}
	return snacks
}

var categoryReasons = map[models.FoodCategory]string{
	models.CategoryCarbohydrates: "Carbohydrates refuel glycogen in the morning and power you through the middle of the day.",
	models.CategoryProteins:      "Protein early curbs appetite and protein in the evening supports overnight muscle repair.",
	models.CategoryHealthyFats:   "Healthy fats slow digestion and keep you full; keep them away from the last hours before bed.",
	models.CategoryVegetables:    "Vegetables add fiber and micronutrients with minimal calories at any main meal.",
	models.CategoryFruits:        "Fruit provides quick energy and vitamins when you need a lift earlier in the day.",
}

// categoryTiming gives two best times per food category, clamped to the window.
func categoryTiming(w clock.Window) map[models.FoodCategory]models.CategoryTiming {
	active := w.ActiveMinutes()
	offsets := map[models.FoodCategory][2]int{
		models.CategoryCarbohydrates: {30, w.Fraction(0.5)},
		models.CategoryProteins:      {60, active - 180},
		models.CategoryHealthyFats:   {90, active - 240},
		models.CategoryVegetables:    {60, w.Fraction(0.6)},
		models.CategoryFruits:        {30, w.Fraction(0.4)},
	}

	timing := make(map[models.FoodCategory]models.CategoryTiming, len(models.FoodCategories))
	for _, cat := range models.FoodCategories {
		off := offsets[cat]
		timing[cat] = models.CategoryTiming{
			BestTimes: []clock.Time{w.ClampAt(off[0]), w.ClampAt(off[1])},
			Reasoning: categoryReasons[cat],
		}
	}
	return timing
}

// hydrationSchedule starts at wake, repeats every 150 minutes until two hours
// before sleep and adds a small pre-bed glass when the day is long enough.
func hydrationSchedule(w clock.Window, high bool) []models.HydrationEntry {
	active := w.ActiveMinutes()
	entries := []models.HydrationEntry{
		{Time: w.At(0), Amount: "16-20 oz", Note: "Rehydrate after sleep"},
	}

	amount := "8-12 oz"
	if high {
		amount = "12-16 oz"
	}
	cutoff := active - preBedHydrationMinutes
	for off := hydrationInterval; off < cutoff; off += hydrationInterval {
		entries = append(entries, models.HydrationEntry{
			Time: w.At(off), Amount: amount, Note: "Regular hydration",
		})
	}

	if active > preBedHydrationMinimum {
		entries = append(entries, models.HydrationEntry{
			Time: w.At(cutoff), Amount: "6-8 oz", Note: "Last glass before bed, taper to avoid waking at night",
		})
	}
	return entries
}

// metabolismTips returns three base tips plus activity and goal extras.
func metabolismTips(goal string, high bool) []string {
	tips := []string{
		"Eat within 1 hour of waking to kick-start your metabolism.",
		"Don't skip meals; regular eating keeps energy and blood sugar stable.",
		"Include a source of protein at every meal.",
	}
	if high {
		tips = append(tips,
			"Eat smaller meals more frequently to fuel your training load.",
			"Time carbohydrates around your workouts for energy and recovery.",
		)
	}
	switch goal {
	case catalog.LoseWeight:
		tips = append(tips,
			"Keep a consistent meal schedule to regulate hunger hormones.",
			"Stop eating 3 hours before bed.",
		)
	case catalog.BuildMuscle:
		tips = append(tips,
			"Eat protein within 2 hours after training.",
			"Never go more than 4 hours without eating.",
		)
	}
	return tips
}

// fastingWindow proposes a 16:8 eating window starting three hours after
// waking. Only weight loss gets one; it is recommended when the waking day
// is at least 14 hours.
func fastingWindow(w clock.Window, goal string) *models.FastingWindow {
	if goal != catalog.LoseWeight {
		return nil
	}
	return &models.FastingWindow{
		Start:         w.At(eatingWindowDelay),
		End:           w.At(eatingWindowDelay + eatingHours*60),
		DurationHours: fastingHours,
		EatingHours:   eatingHours,
		Recommended:   w.ActiveMinutes() >= fastingRecommendMinimum,
	}
}
