// ABOUTME: CreateHealthProfile orchestrates every calculation for one request.
// ABOUTME: Validation failures produce an unsuccessful result instead of an error.
package calculator

import (
	"github.com/harperreed/nutriplan/internal/models"
)

// CreateHealthProfile validates the request and runs the full pipeline:
// BMR, TDEE, target calories, BMI, ideal weight, water, nutrition targets,
// health score, recommendations, shopping and meal timings. It never returns
// an error; callers check Success.
func (c *Calculator) CreateHealthProfile(req models.ProfileRequest) *models.ProfileResult {
	profile, err := req.Profile()
	if err != nil {
		return &models.ProfileResult{
			Success: false,
			Error:   models.ErrorCodeValidation,
			Message: err.Error(),
		}
	}

	bmr := BMR(profile.Weight, profile.Height, profile.Age, profile.Sex)
	tdee := c.TDEE(bmr, profile.ActivityLevel)
	target := c.TargetCalories(tdee, profile.FitnessGoal)
	bmi, category := BMI(profile.Weight, profile.Height)

	metrics := &models.HealthMetrics{
		BMI:         bmi,
		BMICategory: category,
		BMR:         bmr,
		TDEE:        tdee,
		IdealWeight: IdealWeight(profile.Height),
		WaterNeed:   c.WaterNeeds(profile.Weight, profile.ActivityLevel),
	}

	targets := c.NutritionTargets(target, profile.FitnessGoal)
	targets.Water = metrics.WaterNeed

	metrics.HealthScore = c.HealthScore(profile, metrics)
	metrics.Recommendations = c.Recommendations(profile, metrics)

	shopping := ShoppingRecommendations(profile, &targets)

	return &models.ProfileResult{
		Success:          true,
		Profile:          profile,
		Metrics:          metrics,
		NutritionTargets: &targets,
		MealTimings:      c.MealTimings(profile, &targets),
		Shopping:         &shopping,
	}
}
