// ABOUTME: Health profile input model and request validation.
// ABOUTME: Converts raw user input into an immutable HealthProfile.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/clock"
)

// ErrInvalidProfile is wrapped by every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Plausible input bounds. Values outside these ranges are rejected.
const (
	MinHeightCM    = 50
	MaxHeightCM    = 250
	MinWeightKG    = 10
	MaxWeightKG    = 400
	MinAge         = 1
	MaxAge         = 120
	MinMealsPerDay = 1
	MaxMealsPerDay = 10
)

// Sex is the biological sex used by the BMR formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// ParseSex maps free-form input to a Sex. Anything other than male or
// female, including an empty string, is treated as other.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale
	case "female", "f":
		return SexFemale
	default:
		return SexOther
	}
}

// ProfileRequest is the raw profile as collected from a form, flag set or API call.
type ProfileRequest struct {
	Height              float64  `json:"height" yaml:"height"`
	Weight              float64  `json:"weight" yaml:"weight"`
	Age                 int      `json:"age" yaml:"age"`
	Sex                 string   `json:"sex" yaml:"sex"`
	ActivityLevelID     string   `json:"activity_level_id" yaml:"activity_level_id"`
	FitnessGoalID       string   `json:"fitness_goal_id" yaml:"fitness_goal_id"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty" yaml:"dietary_restrictions,omitempty"`
	HealthConditions    []string `json:"health_conditions,omitempty" yaml:"health_conditions,omitempty"`
	MealsPerDay         int      `json:"meals_per_day" yaml:"meals_per_day"`
	WakeTime            string   `json:"wake_time" yaml:"wake_time"`
	BedTime             string   `json:"bed_time" yaml:"bed_time"`
}

// WithDefaults returns a copy of r with empty wake time, bed time, meals per
// day and sex taken from d.
func (r ProfileRequest) WithDefaults(d ProfileRequest) ProfileRequest {
	if r.WakeTime == "" {
		r.WakeTime = d.WakeTime
	}
	if r.BedTime == "" {
		r.BedTime = d.BedTime
	}
	if r.MealsPerDay == 0 {
		r.MealsPerDay = d.MealsPerDay
	}
	if r.Sex == "" {
		r.Sex = d.Sex
	}
	return r
}

// Profile validates the request and builds a HealthProfile.
// All failures wrap ErrInvalidProfile.
func (r ProfileRequest) Profile() (*HealthProfile, error) {
	if !catalog.IsValidActivityLevel(r.ActivityLevelID) {
		return nil, fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, r.ActivityLevelID)
	}
	if !catalog.IsValidFitnessGoal(r.FitnessGoalID) {
		return nil, fmt.Errorf("%w: unknown fitness goal %q", ErrInvalidProfile, r.FitnessGoalID)
	}
	if !(r.Height >= MinHeightCM && r.Height <= MaxHeightCM) {
		return nil, fmt.Errorf("%w: height must be between %d and %d cm", ErrInvalidProfile, MinHeightCM, MaxHeightCM)
	}
	if !(r.Weight >= MinWeightKG && r.Weight <= MaxWeightKG) {
		return nil, fmt.Errorf("%w: weight must be between %d and %d kg", ErrInvalidProfile, MinWeightKG, MaxWeightKG)
	}
	if r.Age < MinAge || r.Age > MaxAge {
		return nil, fmt.Errorf("%w: age must be between %d and %d", ErrInvalidProfile, MinAge, MaxAge)
	}
	if r.MealsPerDay < MinMealsPerDay || r.MealsPerDay > MaxMealsPerDay {
		return nil, fmt.Errorf("%w: meals per day must be between %d and %d", ErrInvalidProfile, MinMealsPerDay, MaxMealsPerDay)
	}

	wake, err := clock.Parse(r.WakeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: wake time: %v", ErrInvalidProfile, err)
	}
	sleep, err := clock.Parse(r.BedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bed time: %v", ErrInvalidProfile, err)
	}
	if wake == sleep {
		return nil, fmt.Errorf("%w: wake and bed time must differ", ErrInvalidProfile)
	}

	return &HealthProfile{
		Height:              r.Height,
		Weight:              r.Weight,
		Age:                 r.Age,
		Sex:                 ParseSex(r.Sex),
		ActivityLevel:       r.ActivityLevelID,
		FitnessGoal:         r.FitnessGoalID,
		DietaryRestrictions: cleanList(r.DietaryRestrictions),
		HealthConditions:    cleanList(r.HealthConditions),
		MealsPerDay:         r.MealsPerDay,
		WakeTime:            wake,
		SleepTime:           sleep,
	}, nil
}

// cleanList trims entries, drops blanks and duplicates, and returns a new slice.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HealthProfile is a validated physiological profile. The calculator and
// scheduler read it but never modify it.
type HealthProfile struct {
	Height              float64    `json:"height_cm" yaml:"height_cm"`
	Weight              float64    `json:"weight_kg" yaml:"weight_kg"`
	Age                 int        `json:"age" yaml:"age"`
	Sex                 Sex        `json:"sex" yaml:"sex"`
	ActivityLevel       string     `json:"activity_level" yaml:"activity_level"`
	FitnessGoal         string     `json:"fitness_goal" yaml:"fitness_goal"`
	DietaryRestrictions []string   `json:"dietary_restrictions,omitempty" yaml:"dietary_restrictions,omitempty"`
	HealthConditions    []string   `json:"health_conditions,omitempty" yaml:"health_conditions,omitempty"`
	MealsPerDay         int        `json:"meals_per_day" yaml:"meals_per_day"`
	WakeTime            clock.Time `json:"wake_time" yaml:"wake_time"`
	SleepTime           clock.Time `json:"sleep_time" yaml:"sleep_time"`
}

// Window returns the waking interval of the profile.
func (p *HealthProfile) Window() clock.Window {
	return clock.Window{Wake: p.WakeTime, Sleep: p.SleepTime}
}

// HasRestriction reports whether any dietary restriction matches one of names,
// case-insensitively.
func (p *HealthProfile) HasRestriction(names ...string) bool {
	for _, r := range p.DietaryRestrictions {
		for _, n := range names {
			if strings.EqualFold(r, n) {
				return true
			}
		}
	}
	return false
}
