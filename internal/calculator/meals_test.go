// ABOUTME: Tests for per-meal timing, calorie split and macro focus.
// ABOUTME: Covers the fixed split tables and the even split for large counts.
package calculator

import (
	"testing"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
)

func TestMealSlotsSumTo100(t *testing.T) {
	for count := 1; count <= models.MaxMealsPerDay; count++ {
		slots := mealSlots(count)
		if len(slots) != count {
			t.Fatalf("mealSlots(%d) returned %d slots", count, len(slots))
		}
		sum := 0
		for _, s := range slots {
			sum += s.percent
		}
		if sum != 100 {
			t.Errorf("mealSlots(%d) shares sum to %d", count, sum)
		}
	}
}

func TestMealSlotsLargeCount(t *testing.T) {
	slots := mealSlots(7)
	if slots[0].mealType != models.MealBreakfast || slots[6].mealType != models.MealDinner {
		t.Errorf("expected breakfast first and dinner last, got %s and %s", slots[0].mealType, slots[6].mealType)
	}
	for i := 1; i < 6; i++ {
		if slots[i].mealType != models.MealSnack {
			t.Errorf("slot %d = %s, want snack", i, slots[i].mealType)
		}
	}
	if slots[0].percent != 15 || slots[1].percent != 15 || slots[2].percent != 14 {
		t.Errorf("remainder should go to earliest meals: %+v", slots)
	}
}

func TestMealTimingsThreeMeals(t *testing.T) {
	c := newTestCalculator(t)
	p := referenceProfile(t)
	targets := &models.NutritionTargets{TotalCalories: 2556}

	got := c.MealTimings(p, targets)
	if len(got) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(got))
	}

	want := []struct {
		mealType models.MealType
		at       string
		window   string
		pct      int
		kcal     int
	}{
		{models.MealBreakfast, "09:40", "09:10-10:10", 30, 767},
		{models.MealLunch, "15:00", "14:30-15:30", 40, 1022},
		{models.MealDinner, "20:20", "19:50-20:50", 30, 767},
	}
	for i, w := range want {
		m := got[i]
		if m.MealType != w.mealType {
			t.Errorf("meal %d type = %s, want %s", i, m.MealType, w.mealType)
		}
		if m.RecommendedTime.String() != w.at {
			t.Errorf("meal %d time = %s, want %s", i, m.RecommendedTime, w.at)
		}
		if m.TimeWindow.String() != w.window {
			t.Errorf("meal %d window = %s, want %s", i, m.TimeWindow, w.window)
		}
		if m.CaloriePercentage != w.pct || m.Calories != w.kcal {
			t.Errorf("meal %d = %d%%/%d kcal, want %d%%/%d kcal", i, m.CaloriePercentage, m.Calories, w.pct, w.kcal)
		}
	}
}

func TestMealTimingsSnackWindowAndClamp(t *testing.T) {
	c := newTestCalculator(t)
	p := referenceProfile(t)
	p.MealsPerDay = 2
	p.WakeTime = clock.MustParse("07:00")
	p.SleepTime = clock.MustParse("07:40")

	got := c.MealTimings(p, &models.NutritionTargets{TotalCalories: 2000})
	// Breakfast is clamped to the 40 minute window.
	if got[0].RecommendedTime.String() != "07:40" {
		t.Errorf("breakfast = %s, want 07:40", got[0].RecommendedTime)
	}
	if got[0].TimeWindow.String() != "07:10-07:40" {
		t.Errorf("breakfast window = %s, want 07:10-07:40", got[0].TimeWindow)
	}

	p.SleepTime = clock.MustParse("23:00")
	p.MealsPerDay = 4
	got = c.MealTimings(p, &models.NutritionTargets{TotalCalories: 2000})
	snack := got[2]
	if snack.MealType != models.MealAfternoonSnack {
		t.Fatalf("meal 2 = %s, want afternoon_snack", snack.MealType)
	}
	if span := int(snack.TimeWindow.End) - int(snack.TimeWindow.Start); span != 30 {
		t.Errorf("snack window spans %d minutes, want 30", span)
	}
}

func TestMealTimingsProteinFirst(t *testing.T) {
	c := newTestCalculator(t)
	p := referenceProfile(t)
	p.FitnessGoal = catalog.BuildMuscle

	for _, m := range c.MealTimings(p, &models.NutritionTargets{TotalCalories: 2500}) {
		if len(m.MacroFocus) == 0 || m.MacroFocus[0] != "protein" {
			t.Errorf("%s macro focus = %v, want protein first", m.MealType, m.MacroFocus)
		}
	}

	// The shared guide table is not modified.
	if mealGuides[models.MealBreakfast].macroFocus[0] != "carbs" {
		t.Error("meal guide table was mutated")
	}
}
