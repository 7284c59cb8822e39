// ABOUTME: Shared profile flags for commands that calculate plans.
// ABOUTME: Missing schedule values fall back to configured defaults.
package main

import (
	"strings"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/spf13/cobra"
)

type profileFlags struct {
	height       float64
	weight       float64
	age          int
	sex          string
	activity     string
	goal         string
	meals        int
	wake         string
	bed          string
	restrictions []string
	conditions   []string
}

func (p *profileFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&p.height, "height", 0, "height in cm")
	f.Float64Var(&p.weight, "weight", 0, "weight in kg")
	f.IntVar(&p.age, "age", 0, "age in years")
	f.StringVar(&p.sex, "sex", "", "male, female or other")
	f.StringVarP(&p.activity, "activity", "a", "", "activity level ("+strings.Join(catalog.ActivityLevelIDs(), ", ")+")")
	f.StringVarP(&p.goal, "goal", "g", "", "fitness goal ("+strings.Join(catalog.FitnessGoalIDs(), ", ")+")")
	f.IntVarP(&p.meals, "meals", "m", 0, "meals per day (default from config)")
	f.StringVar(&p.wake, "wake", "", "wake time HH:MM (default from config)")
	f.StringVar(&p.bed, "bed", "", "bed time HH:MM (default from config)")
	f.StringSliceVar(&p.restrictions, "restriction", nil, "dietary restriction, repeatable (vegan, vegetarian, ...)")
	f.StringSliceVar(&p.conditions, "condition", nil, "health condition, repeatable")
}

func (p *profileFlags) reset() {
	*p = profileFlags{}
}

// request builds a ProfileRequest with config defaults applied.
func (p *profileFlags) request() models.ProfileRequest {
	req := models.ProfileRequest{
		Height:              p.height,
		Weight:              p.weight,
		Age:                 p.age,
		Sex:                 p.sex,
		ActivityLevelID:     p.activity,
		FitnessGoalID:       p.goal,
		DietaryRestrictions: p.restrictions,
		HealthConditions:    p.conditions,
		MealsPerDay:         p.meals,
		WakeTime:            p.wake,
		BedTime:             p.bed,
	}
	return req.WithDefaults(cfg.ProfileDefaults())
}
