// ABOUTME: Shopping list guidance derived from a profile and its nutrition targets.
// ABOUTME: Focus areas mirror the macro split; priority items follow ordered rules.
package calculator

import (
	"fmt"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
)

// Shopping focus categories.
const (
	FocusProtein = "protein sources"
	FocusCarbs   = "complex carbohydrates"
	FocusFats    = "healthy fats"
	FocusFiber   = "fiber & micronutrients"
)

// kcalPerGramFiber is the energy credited to fiber when sizing its focus area.
const kcalPerGramFiber = 2.0

// ShoppingRecommendations builds focus areas and priority items. Priority
// rules run in a fixed order: protein source, carbohydrate source, omega-3,
// then electrolytes for high activity.
func ShoppingRecommendations(profile *models.HealthProfile, targets *models.NutritionTargets) models.ShoppingRecommendations {
	fiberPct := 0
	if targets.TotalCalories > 0 {
		fiberPct = roundInt(float64(targets.Fiber) * kcalPerGramFiber / float64(targets.TotalCalories) * 100)
	}

	focus := []models.FocusArea{
		{
			Category:   FocusProtein,
			Percentage: targets.Protein.Percentage,
			Reasoning:  fmt.Sprintf("Supports your daily target of %dg protein.", targets.Protein.Grams),
		},
		{
			Category:   FocusCarbs,
			Percentage: targets.Carbs.Percentage,
			Reasoning:  fmt.Sprintf("Provides steady energy toward %dg carbohydrates.", targets.Carbs.Grams),
		},
		{
			Category:   FocusFats,
			Percentage: targets.Fat.Percentage,
			Reasoning:  fmt.Sprintf("Covers %dg fat for hormones and nutrient absorption.", targets.Fat.Grams),
		},
		{
			Category:   FocusFiber,
			Percentage: fiberPct,
			Reasoning:  fmt.Sprintf("Reaches %dg fiber from vegetables, fruits and legumes.", targets.Fiber),
		},
	}

	var items []string
	if profile.HasRestriction("vegetarian", "vegan") {
		items = append(items, "Plant proteins: tofu, tempeh, lentils, chickpeas and edamame")
	} else {
		items = append(items, "Lean proteins: chicken breast, fish, eggs and Greek yogurt")
	}

	switch profile.FitnessGoal {
	case catalog.LoseWeight:
		items = append(items, "Low-glycemic vegetables: leafy greens, broccoli, zucchini and peppers")
	case catalog.BuildMuscle, catalog.GainWeight:
		items = append(items, "Complex carbs: oats, brown rice, sweet potatoes and quinoa")
	default:
		items = append(items, "Whole grains: whole wheat bread, brown rice and barley")
	}

	items = append(items, "Omega-3 sources: salmon, walnuts, chia and flax seeds")

	if catalog.IsHighActivity(profile.ActivityLevel) {
		items = append(items, "Electrolyte replacement: coconut water, bananas and a pinch of salt")
	}

	return models.ShoppingRecommendations{FocusAreas: focus, PriorityItems: items}
}
