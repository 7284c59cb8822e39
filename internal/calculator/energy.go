// ABOUTME: Energy expenditure calculations: BMR, TDEE and target calories.
// ABOUTME: Mifflin-St Jeor with an averaged offset for unspecified sex.
package calculator

import (
	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
)

// Mifflin-St Jeor sex offsets. Other uses the mean of the two.
const (
	maleOffset   = 5.0
	femaleOffset = -161.0
	otherOffset  = (maleOffset + femaleOffset) / 2
)

// BMR returns basal metabolic rate in kcal/day using Mifflin-St Jeor:
// 10*weight + 6.25*height - 5*age plus a sex offset.
func BMR(weight, height float64, age int, sex models.Sex) float64 {
	base := 10*weight + 6.25*height - 5*float64(age)
	switch sex {
	case models.SexMale:
		return base + maleOffset
	case models.SexFemale:
		return base + femaleOffset
	default:
		return base + otherOffset
	}
}

// TDEE scales BMR by the activity multiplier. Unknown ids use the
// sedentary multiplier and log a warning.
func (c *Calculator) TDEE(bmr float64, activityLevelID string) float64 {
	return bmr * c.activityMultiplier(activityLevelID)
}

// TargetCalories applies the goal's calorie adjustment to TDEE and rounds.
// Unknown goal ids apply no adjustment and log a warning.
func (c *Calculator) TargetCalories(tdee float64, fitnessGoalID string) int {
	goal, ok := catalog.LookupFitnessGoal(fitnessGoalID)
	if !ok {
		c.logger.Warn("unknown fitness goal, applying no calorie adjustment", "id", fitnessGoalID)
		return roundInt(tdee)
	}
	return roundInt(tdee * (1 + goal.CalorieAdjustment))
}
