// ABOUTME: Body metric calculations: BMI, ideal weight range and water need.
// ABOUTME: Values are rounded to one decimal place.
package calculator

import "github.com/harperreed/nutriplan/internal/models"

// BMI thresholds and the BMI bounds of the ideal weight range.
const (
	bmiUnderweightBelow = 18.5
	bmiNormalBelow      = 25.0
	bmiOverweightBelow  = 30.0

	idealBMIMin = 18.5
	idealBMIMax = 24.9
)

// Water need constants.
const (
	waterMLPerKG          = 35.0
	waterActivityCutoff   = 1.55
	waterLitersPerMultDif = 0.5
)

// BMI returns body mass index rounded to one decimal and its category.
// The category is taken from the unrounded value.
func BMI(weight, height float64) (float64, models.BMICategory) {
	meters := height / 100
	bmi := weight / (meters * meters)
	return round1(bmi), CategorizeBMI(bmi)
}

// CategorizeBMI classifies a BMI value with strict lower-than boundaries at
// 18.5, 25 and 30.
func CategorizeBMI(bmi float64) models.BMICategory {
	switch {
	case bmi < bmiUnderweightBelow:
		return models.BMIUnderweight
	case bmi < bmiNormalBelow:
		return models.BMINormal
	case bmi < bmiOverweightBelow:
		return models.BMIOverweight
	default:
		return models.BMIObese
	}
}

// IdealWeight returns the weight range matching BMI 18.5 to 24.9 at height.
func IdealWeight(height float64) models.WeightRange {
	meters := height / 100
	sq := meters * meters
	return models.WeightRange{
		Min: round1(idealBMIMin * sq),
		Max: round1(idealBMIMax * sq),
	}
}

// WaterNeeds returns daily water need in liters: 35 ml per kg, plus
// (multiplier - 1.2) * 0.5 liters when the activity multiplier exceeds 1.55.
func (c *Calculator) WaterNeeds(weight float64, activityLevelID string) float64 {
	liters := weight * waterMLPerKG / 1000
	if mult := c.activityMultiplier(activityLevelID); mult > waterActivityCutoff {
		liters += (mult - 1.2) * waterLitersPerMultDif
	}
	return round1(liters)
}
