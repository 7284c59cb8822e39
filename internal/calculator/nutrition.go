// ABOUTME: Macro nutrient targets derived from target calories and the goal split.
// ABOUTME: Grams use 4/4/9 kcal per gram for protein, carbs and fat.
package calculator

import (
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
)

// Energy densities in kcal per gram.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// Balanced split used when the goal id is unknown.
const (
	fallbackProteinRatio = 0.25
	fallbackCarbRatio    = 0.45
	fallbackFatRatio     = 0.30
)

// NutritionTargets splits target calories by the goal's macro ratios.
// Fiber is one gram per 100 kcal. Water is left at zero for the caller to
// fill from the water need.
func (c *Calculator) NutritionTargets(targetCalories int, fitnessGoalID string) models.NutritionTargets {
	protein, carbs, fat := fallbackProteinRatio, fallbackCarbRatio, fallbackFatRatio
	if goal, ok := catalog.LookupFitnessGoal(fitnessGoalID); ok {
		protein, carbs, fat = goal.ProteinRatio, goal.CarbRatio, goal.FatRatio
	} else {
		c.logger.Warn("unknown fitness goal, using balanced macro split", "id", fitnessGoalID)
	}

	total := float64(targetCalories)
	return models.NutritionTargets{
		TotalCalories: targetCalories,
		Protein:       macro(total, protein, kcalPerGramProtein),
		Carbs:         macro(total, carbs, kcalPerGramCarbs),
		Fat:           macro(total, fat, kcalPerGramFat),
		Fiber:         roundInt(total / 100),
	}
}

func macro(total, ratio, kcalPerGram float64) models.MacroTarget {
	calories := total * ratio
	return models.MacroTarget{
		Grams:      roundInt(calories / kcalPerGram),
		Calories:   roundInt(calories),
		Percentage: roundInt(ratio * 100),
	}
}
