// ABOUTME: Plan model combining calculator targets with the meal schedule.
// ABOUTME: The only model carrying an ID and a wall-clock timestamp.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a saved day plan: the request it was built from plus every
// computed result.
type Plan struct {
	ID          uuid.UUID                `json:"id" yaml:"id"`
	Name        string                   `json:"name,omitempty" yaml:"name,omitempty"`
	Notes       *string                  `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at" yaml:"created_at"`
	Request     ProfileRequest           `json:"request" yaml:"request"`
	Profile     HealthProfile            `json:"profile" yaml:"profile"`
	Metrics     HealthMetrics            `json:"metrics" yaml:"metrics"`
	Targets     NutritionTargets         `json:"targets" yaml:"targets"`
	MealTimings []MealTiming             `json:"meal_timings" yaml:"meal_timings"`
	Schedule    MealTimingRecommendation `json:"schedule" yaml:"schedule"`
	Shopping    ShoppingRecommendations  `json:"shopping" yaml:"shopping"`
}

// NewPlan creates an empty Plan with a generated UUID and current timestamp.
func NewPlan(name string) *Plan {
	return &Plan{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// WithNotes sets notes on the plan.
func (p *Plan) WithNotes(notes string) *Plan {
	p.Notes = &notes
	return p
}

// WithCreatedAt sets a custom creation timestamp.
func (p *Plan) WithCreatedAt(t time.Time) *Plan {
	p.CreatedAt = t
	return p
}

// ShortID returns the 8-character ID prefix shown in listings.
func (p *Plan) ShortID() string {
	return p.ID.String()[:8]
}

// DisplayName returns the plan name, falling back to the fitness goal.
func (p *Plan) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Profile.FitnessGoal
}

// PlanSummary is the listing view of a plan.
type PlanSummary struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty"`
	FitnessGoal   string    `json:"fitness_goal" yaml:"fitness_goal"`
	ActivityLevel string    `json:"activity_level" yaml:"activity_level"`
	TotalCalories int       `json:"total_calories" yaml:"total_calories"`
	MealsPerDay   int       `json:"meals_per_day" yaml:"meals_per_day"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Summary returns the listing view of the plan.
func (p *Plan) Summary() PlanSummary {
	return PlanSummary{
		ID:            p.ID.String(),
		Name:          p.Name,
		FitnessGoal:   p.Profile.FitnessGoal,
		ActivityLevel: p.Profile.ActivityLevel,
		TotalCalories: p.Targets.TotalCalories,
		MealsPerDay:   p.Profile.MealsPerDay,
		CreatedAt:     p.CreatedAt,
	}
}

// Summaries maps plans to their listing views.
func Summaries(plans []*Plan) []PlanSummary {
	out := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.Summary())
	}
	return out
}
