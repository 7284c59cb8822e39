// ABOUTME: Tests for profile request validation and HealthProfile helpers.
// ABOUTME: Covers catalog id checks, numeric guards and time parsing.
package models

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func validRequest() ProfileRequest {
	return ProfileRequest{
		Height:          175,
		Weight:          70,
		Age:             30,
		Sex:             "male",
		ActivityLevelID: "moderately_active",
		FitnessGoalID:   "maintain_weight",
		MealsPerDay:     3,
		WakeTime:        "07:00",
		BedTime:         "23:00",
	}
}

func TestProfileValid(t *testing.T) {
	p, err := validRequest().Profile()
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	if p.Sex != SexMale {
		t.Errorf("Sex = %q, want male", p.Sex)
	}
	if p.WakeTime.String() != "07:00" || p.SleepTime.String() != "23:00" {
		t.Errorf("times = %s/%s, want 07:00/23:00", p.WakeTime, p.SleepTime)
	}
	if got := p.Window().ActiveMinutes(); got != 960 {
		t.Errorf("ActiveMinutes() = %d, want 960", got)
	}
}

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *ProfileRequest)
		errSubstr string
	}{
		{name: "unknown activity", mutate: func(r *ProfileRequest) { r.ActivityLevelID = "couch" }, errSubstr: "unknown activity level"},
		{name: "unknown goal", mutate: func(r *ProfileRequest) { r.FitnessGoalID = "get_rich" }, errSubstr: "unknown fitness goal"},
		{name: "zero height", mutate: func(r *ProfileRequest) { r.Height = 0 }, errSubstr: "height"},
		{name: "NaN height", mutate: func(r *ProfileRequest) { r.Height = math.NaN() }, errSubstr: "height"},
		{name: "negative weight", mutate: func(r *ProfileRequest) { r.Weight = -5 }, errSubstr: "weight"},
		{name: "absurd weight", mutate: func(r *ProfileRequest) { r.Weight = 1000 }, errSubstr: "weight"},
		{name: "zero age", mutate: func(r *ProfileRequest) { r.Age = 0 }, errSubstr: "age"},
		{name: "no meals", mutate: func(r *ProfileRequest) { r.MealsPerDay = 0 }, errSubstr: "meals per day"},
		{name: "too many meals", mutate: func(r *ProfileRequest) { r.MealsPerDay = 11 }, errSubstr: "meals per day"},
		{name: "bad wake time", mutate: func(r *ProfileRequest) { r.WakeTime = "7am" }, errSubstr: "wake time"},
		{name: "bad bed time", mutate: func(r *ProfileRequest) { r.BedTime = "25:00" }, errSubstr: "bed time"},
		{name: "same wake and bed", mutate: func(r *ProfileRequest) { r.BedTime = "07:00" }, errSubstr: "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.Profile()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("error %v does not wrap ErrInvalidProfile", err)
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestParseSex(t *testing.T) {
	tests := map[string]Sex{
		"male":      SexMale,
		"Male":      SexMale,
		"f":         SexFemale,
		"FEMALE":    SexFemale,
		"":          SexOther,
		"nonbinary": SexOther,
		"other":     SexOther,
	}
	for in, want := range tests {
		if got := ParseSex(in); got != want {
			t.Errorf("ParseSex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProfileCopiesLists(t *testing.T) {
	req := validRequest()
	req.DietaryRestrictions = []string{" Vegan ", "", "vegan", "gluten-free"}
	req.HealthConditions = []string{"asthma"}

	p, err := req.Profile()
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}

	if len(p.DietaryRestrictions) != 2 {
		t.Fatalf("DietaryRestrictions = %v, want 2 cleaned entries", p.DietaryRestrictions)
	}
	if p.DietaryRestrictions[0] != "Vegan" {
		t.Errorf("first restriction = %q, want %q", p.DietaryRestrictions[0], "Vegan")
	}

	req.HealthConditions[0] = "changed"
	if p.HealthConditions[0] != "asthma" {
		t.Error("profile shares HealthConditions backing array with request")
	}
}

func TestHasRestriction(t *testing.T) {
	p := &HealthProfile{DietaryRestrictions: []string{"Vegetarian", "nut-free"}}
	if !p.HasRestriction("vegetarian", "vegan") {
		t.Error("expected vegetarian match")
	}
	if p.HasRestriction("vegan") {
		t.Error("did not expect vegan match")
	}
}

func TestMealTypeIsSnack(t *testing.T) {
	snacks := []MealType{MealMorningSnack, MealAfternoonSnack, MealEveningSnack, MealSnack}
	for _, m := range snacks {
		if !m.IsSnack() {
			t.Errorf("%s should be a snack", m)
		}
	}
	for _, m := range []MealType{MealBreakfast, MealLunch, MealDinner} {
		if m.IsSnack() {
			t.Errorf("%s should not be a snack", m)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	defaults := ProfileRequest{WakeTime: "06:00", BedTime: "22:00", MealsPerDay: 4, Sex: "female"}

	r := ProfileRequest{Height: 160}.WithDefaults(defaults)
	if r.WakeTime != "06:00" || r.BedTime != "22:00" || r.MealsPerDay != 4 || r.Sex != "female" {
		t.Errorf("WithDefaults() = %+v, want defaults applied", r)
	}
	if r.Height != 160 {
		t.Errorf("Height = %v, want 160", r.Height)
	}

	explicit := validRequest().WithDefaults(defaults)
	if !reflect.DeepEqual(explicit, validRequest()) {
		t.Errorf("WithDefaults() overwrote explicit values: %+v", explicit)
	}
}
