// ABOUTME: Static reference catalogs for activity levels and fitness goals.
// ABOUTME: Read-only id-keyed maps initialized at package load.
package catalog

// ActivityLevelID identifies an entry in the activity level catalog.
type ActivityLevelID = string

// FitnessGoalID identifies an entry in the fitness goal catalog.
type FitnessGoalID = string

// Activity level ids.
const (
	Sedentary        ActivityLevelID = "sedentary"
	LightlyActive    ActivityLevelID = "lightly_active"
	ModeratelyActive ActivityLevelID = "moderately_active"
	VeryActive       ActivityLevelID = "very_active"
	ExtraActive      ActivityLevelID = "extra_active"
)

// Fitness goal ids.
const (
	LoseWeight     FitnessGoalID = "lose_weight"
	MaintainWeight FitnessGoalID = "maintain_weight"
	GainWeight     FitnessGoalID = "gain_weight"
	BuildMuscle    FitnessGoalID = "build_muscle"
	ImproveHealth  FitnessGoalID = "improve_health"
)

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel struct {
	ID          ActivityLevelID `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Multiplier  float64         `json:"multiplier" yaml:"multiplier"`
}

// FitnessGoal adjusts calories and splits them between macros.
// The three ratios sum to 1.0.
type FitnessGoal struct {
	ID                FitnessGoalID `json:"id" yaml:"id"`
	Name              string        `json:"name" yaml:"name"`
	Description       string        `json:"description" yaml:"description"`
	CalorieAdjustment float64       `json:"calorie_adjustment" yaml:"calorie_adjustment"`
	ProteinRatio      float64       `json:"protein_ratio" yaml:"protein_ratio"`
	CarbRatio         float64       `json:"carb_ratio" yaml:"carb_ratio"`
	FatRatio          float64       `json:"fat_ratio" yaml:"fat_ratio"`
}

// SedentaryMultiplier is the fallback multiplier for unknown activity levels.
const SedentaryMultiplier = 1.2

// activityOrder lists activity level ids from least to most active.
var activityOrder = []ActivityLevelID{
	Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive,
}

// goalOrder lists fitness goal ids in display order.
var goalOrder = []FitnessGoalID{
	LoseWeight, MaintainWeight, GainWeight, BuildMuscle, ImproveHealth,
}

var activityLevels = map[ActivityLevelID]ActivityLevel{
	Sedentary: {
		ID:          Sedentary,
		Name:        "Sedentary",
		Description: "Little or no exercise, desk job",
		Multiplier:  1.2,
	},
	LightlyActive: {
		ID:          LightlyActive,
		Name:        "Lightly Active",
		Description: "Light exercise 1-3 days per week",
		Multiplier:  1.375,
	},
	ModeratelyActive: {
		ID:          ModeratelyActive,
		Name:        "Moderately Active",
		Description: "Moderate exercise 3-5 days per week",
		Multiplier:  1.55,
	},
	VeryActive: {
		ID:          VeryActive,
		Name:        "Very Active",
		Description: "Hard exercise 6-7 days per week",
		Multiplier:  1.725,
	},
	ExtraActive: {
		ID:          ExtraActive,
		Name:        "Extra Active",
		Description: "Very hard exercise or a physical job",
		Multiplier:  1.9,
	},
}

var fitnessGoals = map[FitnessGoalID]FitnessGoal{
	LoseWeight: {
		ID:                LoseWeight,
		Name:              "Lose Weight",
		Description:       "Reduce body fat with a 20% calorie deficit",
		CalorieAdjustment: -0.20,
		ProteinRatio:      0.30,
		CarbRatio:         0.40,
		FatRatio:          0.30,
	},
	MaintainWeight: {
		ID:                MaintainWeight,
		Name:              "Maintain Weight",
		Description:       "Keep current weight with balanced nutrition",
		CalorieAdjustment: 0,
		ProteinRatio:      0.25,
		CarbRatio:         0.45,
		FatRatio:          0.30,
	},
	GainWeight: {
		ID:                GainWeight,
		Name:              "Gain Weight",
		Description:       "Increase body weight with a 15% calorie surplus",
		CalorieAdjustment: 0.15,
		ProteinRatio:      0.25,
		CarbRatio:         0.50,
		FatRatio:          0.25,
	},
	BuildMuscle: {
		ID:                BuildMuscle,
		Name:              "Build Muscle",
		Description:       "Support muscle growth with a 10% surplus and high protein",
		CalorieAdjustment: 0.10,
		ProteinRatio:      0.35,
		CarbRatio:         0.40,
		FatRatio:          0.25,
	},
	ImproveHealth: {
		ID:                ImproveHealth,
		Name:              "Improve Health",
		Description:       "Focus on overall wellness and nutrient quality",
		CalorieAdjustment: 0,
		ProteinRatio:      0.25,
		CarbRatio:         0.45,
		FatRatio:          0.30,
	},
}

// LookupActivityLevel returns the activity level for id.
func LookupActivityLevel(id ActivityLevelID) (ActivityLevel, bool) {
	a, ok := activityLevels[id]
	return a, ok
}

// LookupFitnessGoal returns the fitness goal for id.
func LookupFitnessGoal(id FitnessGoalID) (FitnessGoal, bool) {
	g, ok := fitnessGoals[id]
	return g, ok
}

// IsValidActivityLevel reports whether id is in the activity level catalog.
func IsValidActivityLevel(id string) bool {
	_, ok := activityLevels[id]
	return ok
}

// IsValidFitnessGoal reports whether id is in the fitness goal catalog.
func IsValidFitnessGoal(id string) bool {
	_, ok := fitnessGoals[id]
	return ok
}

// IsHighActivity reports whether id is very active or extra active.
func IsHighActivity(id ActivityLevelID) bool {
	return id == VeryActive || id == ExtraActive
}

// ActivityLevels returns all activity levels ordered from least to most active.
// The returned slice is a fresh copy.
func ActivityLevels() []ActivityLevel {
	out := make([]ActivityLevel, 0, len(activityOrder))
	for _, id := range activityOrder {
		out = append(out, activityLevels[id])
	}
	return out
}

// FitnessGoals returns all fitness goals in display order.
// The returned slice is a fresh copy.
func FitnessGoals() []FitnessGoal {
	out := make([]FitnessGoal, 0, len(goalOrder))
	for _, id := range goalOrder {
		out = append(out, fitnessGoals[id])
	}
	return out
}

// ActivityLevelIDs returns the activity level ids in catalog order.
func ActivityLevelIDs() []string {
	return append([]string(nil), activityOrder...)
}

// FitnessGoalIDs returns the fitness goal ids in catalog order.
func FitnessGoalIDs() []string {
	return append([]string(nil), goalOrder...)
}
