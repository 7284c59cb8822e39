// ABOUTME: Output models for the calculator and meal-timing scheduler.
// ABOUTME: Metrics, nutrition targets, meal timings, schedules and shopping focus.
package models

import "github.com/harperreed/nutriplan/internal/clock"

// BMICategory classifies a BMI value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// WeightRange is a min/max body weight in kg.
type WeightRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// HealthMetrics holds energy and body metrics derived from a profile.
type HealthMetrics struct {
	BMI             float64     `json:"bmi" yaml:"bmi"`
	BMICategory     BMICategory `json:"bmi_category" yaml:"bmi_category"`
	BMR             float64     `json:"bmr" yaml:"bmr"`
	TDEE            float64     `json:"tdee" yaml:"tdee"`
	WaterNeed       float64     `json:"water_need_liters" yaml:"water_need_liters"`
	IdealWeight     WeightRange `json:"ideal_weight" yaml:"ideal_weight"`
	HealthScore     int         `json:"health_score" yaml:"health_score"`
	Recommendations []string    `json:"recommendations" yaml:"recommendations"`
}

// MacroTarget is the daily target for one macronutrient.
type MacroTarget struct {
	Grams      int `json:"grams" yaml:"grams"`
	Calories   int `json:"calories" yaml:"calories"`
	Percentage int `json:"percentage" yaml:"percentage"`
}

// NutritionTargets holds daily calorie and macro targets.
type NutritionTargets struct {
	TotalCalories int         `json:"total_calories" yaml:"total_calories"`
	Protein       MacroTarget `json:"protein" yaml:"protein"`
	Carbs         MacroTarget `json:"carbs" yaml:"carbs"`
	Fat           MacroTarget `json:"fat" yaml:"fat"`
	Fiber         int         `json:"fiber_grams" yaml:"fiber_grams"`
	Water         float64     `json:"water_liters" yaml:"water_liters"`
}

// MealType names an eating occasion.
type MealType string

const (
	MealBreakfast      MealType = "breakfast"
	MealMorningSnack   MealType = "morning_snack"
	MealLunch          MealType = "lunch"
	MealAfternoonSnack MealType = "afternoon_snack"
	MealDinner         MealType = "dinner"
	MealEveningSnack   MealType = "evening_snack"
	MealSnack          MealType = "snack"
)

// IsSnack reports whether the meal type is one of the snack variants.
func (m MealType) IsSnack() bool {
	switch m {
	case MealMorningSnack, MealAfternoonSnack, MealEveningSnack, MealSnack:
		return true
	}
	return false
}

// MealTiming describes one scheduled eating occasion.
type MealTiming struct {
	MealType          MealType    `json:"meal_type" yaml:"meal_type"`
	RecommendedTime   clock.Time  `json:"recommended_time" yaml:"recommended_time"`
	TimeWindow        clock.Range `json:"time_window" yaml:"time_window"`
	CaloriePercentage int         `json:"calorie_percentage" yaml:"calorie_percentage"`
	Calories          int         `json:"calories" yaml:"calories"`
	MacroFocus        []string    `json:"macro_focus" yaml:"macro_focus"`
	FoodCategories    []string    `json:"food_categories" yaml:"food_categories"`
	Reasoning         string      `json:"reasoning" yaml:"reasoning"`
}

// FoodCategory is one of the food groups with timing guidance.
type FoodCategory string

const (
	CategoryCarbohydrates FoodCategory = "carbohydrates"
	CategoryProteins      FoodCategory = "proteins"
	CategoryHealthyFats   FoodCategory = "healthy_fats"
	CategoryVegetables    FoodCategory = "vegetables"
	CategoryFruits        FoodCategory = "fruits"
)

// FoodCategories lists the food categories in display order.
var FoodCategories = []FoodCategory{
	CategoryCarbohydrates, CategoryProteins, CategoryHealthyFats, CategoryVegetables, CategoryFruits,
}

// CategoryTiming gives the best times to eat a food category.
type CategoryTiming struct {
	BestTimes []clock.Time `json:"best_times" yaml:"best_times"`
	Reasoning string       `json:"reasoning" yaml:"reasoning"`
}

// HydrationEntry is one checkpoint in the hydration schedule.
type HydrationEntry struct {
	Time   clock.Time `json:"time" yaml:"time"`
	Amount string     `json:"amount" yaml:"amount"`
	Note   string     `json:"note" yaml:"note"`
}

// FastingWindow is a 16:8 intermittent fasting proposal. Start and End bound
// the eating window; the fast runs from End until the next day's Start.
type FastingWindow struct {
	Start         clock.Time `json:"start" yaml:"start"`
	End           clock.Time `json:"end" yaml:"end"`
	DurationHours int        `json:"duration_hours" yaml:"duration_hours"`
	EatingHours   int        `json:"eating_hours" yaml:"eating_hours"`
	Recommended   bool       `json:"recommended" yaml:"recommended"`
}

// MealTimingRecommendation is the full day schedule from the scheduler.
type MealTimingRecommendation struct {
	MealTimes         []clock.Time                    `json:"meal_times" yaml:"meal_times"`
	SnackTimes        []clock.Time                    `json:"snack_times" yaml:"snack_times"`
	CategoryTiming    map[FoodCategory]CategoryTiming `json:"category_timing" yaml:"category_timing"`
	HydrationSchedule []HydrationEntry                `json:"hydration_schedule" yaml:"hydration_schedule"`
	MetabolismTips    []string                        `json:"metabolism_tips" yaml:"metabolism_tips"`
	FastingWindow     *FastingWindow                  `json:"fasting_window" yaml:"fasting_window"`
}

// FocusArea is one shopping focus category with its share of calories.
type FocusArea struct {
	Category   string `json:"category" yaml:"category"`
	Percentage int    `json:"percentage" yaml:"percentage"`
	Reasoning  string `json:"reasoning" yaml:"reasoning"`
}

// ShoppingRecommendations guides a shopping list toward the nutrition targets.
type ShoppingRecommendations struct {
	FocusAreas    []FocusArea `json:"focus_areas" yaml:"focus_areas"`
	PriorityItems []string    `json:"priority_items" yaml:"priority_items"`
}

// ErrorCodeValidation marks a ProfileResult rejected during validation.
const ErrorCodeValidation = "validation"

// ProfileResult is the outcome of building a health profile. When Success is
// false only Error and Message are populated.
type ProfileResult struct {
	Success          bool                     `json:"success" yaml:"success"`
	Profile          *HealthProfile           `json:"profile,omitempty" yaml:"profile,omitempty"`
	Metrics          *HealthMetrics           `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	NutritionTargets *NutritionTargets        `json:"nutrition_targets,omitempty" yaml:"nutrition_targets,omitempty"`
	MealTimings      []MealTiming             `json:"meal_timings,omitempty" yaml:"meal_timings,omitempty"`
	Shopping         *ShoppingRecommendations `json:"shopping,omitempty" yaml:"shopping,omitempty"`
	Error            string                   `json:"error,omitempty" yaml:"error,omitempty"`
	Message          string                   `json:"message,omitempty" yaml:"message,omitempty"`
}
