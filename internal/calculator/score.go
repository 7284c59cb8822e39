// ABOUTME: Health score and advisory recommendations for a profile.
// ABOUTME: Both are ordered, rule-based and deterministic.
package calculator

import (
	"fmt"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
)

// HealthScore starts at 100 and subtracts penalties for BMI category,
// activity, health conditions and age. Improving health adds 5. The result
// is clamped to [0, 100].
func (c *Calculator) HealthScore(profile *models.HealthProfile, metrics *models.HealthMetrics) int {
	score := 100

	switch metrics.BMICategory {
	case models.BMIOverweight:
		score -= 15
	case models.BMIUnderweight:
		score -= 20
	case models.BMIObese:
		score -= 30
	}

	switch mult := c.activityMultiplier(profile.ActivityLevel); {
	case mult >= 1.55:
	case mult >= 1.375:
		score -= 5
	default:
		score -= 15
	}

	score -= min(10*len(profile.HealthConditions), 20)

	switch {
	case profile.Age < 30:
	case profile.Age < 50:
		score -= 5
	default:
		score -= 10
	}

	if profile.FitnessGoal == catalog.ImproveHealth {
		score += 5
	}

	return max(0, min(100, score))
}

// Recommendations returns advisory strings in a fixed rule order: BMI,
// activity, water, age, health conditions, then goal.
func (c *Calculator) Recommendations(profile *models.HealthProfile, metrics *models.HealthMetrics) []string {
	var recs []string

	switch metrics.BMICategory {
	case models.BMIUnderweight:
		recs = append(recs, "Your BMI is below the healthy range. Focus on nutrient-dense foods and a modest calorie surplus.")
	case models.BMIOverweight:
		recs = append(recs, "Your BMI is above the healthy range. A moderate calorie deficit and regular activity can help.")
	case models.BMIObese:
		recs = append(recs, "Your BMI is in the obese range. Consider working with a healthcare provider on a sustainable plan.")
	default:
		recs = append(recs, "Your BMI is in the healthy range. Keep up your current habits.")
	}

	if c.activityMultiplier(profile.ActivityLevel) < 1.375 {
		recs = append(recs, "Try to add at least 150 minutes of moderate activity per week.")
	}

	recs = append(recs, fmt.Sprintf("Drink at least %.1f liters of water per day.", metrics.WaterNeed))

	if profile.Age >= 50 {
		recs = append(recs, "Prioritize calcium, vitamin D and protein to support bone and muscle health.")
	}

	if len(profile.HealthConditions) > 0 {
		recs = append(recs, "Discuss these targets with your healthcare provider given your health conditions.")
	}

	switch profile.FitnessGoal {
	case catalog.LoseWeight:
		recs = append(recs, "Aim for a steady loss of 0.5 to 1 kg per week and keep protein high to preserve muscle.")
	case catalog.GainWeight:
		recs = append(recs, "Add calorie-dense whole foods and pair the surplus with strength training.")
	case catalog.BuildMuscle:
		recs = append(recs, "Train each muscle group at least twice a week and spread protein across your meals.")
	case catalog.MaintainWeight:
		recs = append(recs, "Weigh yourself weekly and adjust portions if your weight drifts.")
	case catalog.ImproveHealth:
		recs = append(recs, "Fill half your plate with vegetables and favor whole, minimally processed foods.")
	}

	return recs
}
