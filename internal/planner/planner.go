// ABOUTME: Planner combines calculator results and the meal schedule into a Plan.
// ABOUTME: This is the only place a plan gets an ID and creation timestamp.
package planner

import (
	"fmt"
	"strings"

	"github.com/harperreed/nutriplan/internal/calculator"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/scheduler"
)

// Planner builds day plans from profile requests.
type Planner struct {
	calc *calculator.Calculator
}

// New creates a Planner. A nil calculator gets a default one.
func New(calc *calculator.Calculator) *Planner {
	if calc == nil {
		calc = calculator.New(nil)
	}
	return &Planner{calc: calc}
}

// Calculator returns the calculator used by the planner.
func (p *Planner) Calculator() *calculator.Calculator {
	return p.calc
}

// Build runs the calculator and scheduler for req and assembles a named plan.
// Validation failures wrap models.ErrInvalidProfile.
func (p *Planner) Build(req models.ProfileRequest, name string) (*models.Plan, error) {
	res := p.calc.CreateHealthProfile(req)
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidProfile, trimInvalid(res.Message))
	}

	plan := models.NewPlan(name)
	plan.Request = req
	plan.Profile = *res.Profile
	plan.Metrics = *res.Metrics
	plan.Targets = *res.NutritionTargets
	plan.MealTimings = res.MealTimings
	plan.Schedule = *scheduler.GenerateMealTiming(res.Profile)
	plan.Shopping = *res.Shopping
	return plan, nil
}

// trimInvalid drops the sentinel prefix so it is not repeated when rewrapped.
func trimInvalid(msg string) string {
	return strings.TrimPrefix(msg, models.ErrInvalidProfile.Error()+": ")
}
