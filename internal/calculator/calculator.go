// ABOUTME: Calculator type holding the logger used for catalog fallbacks.
// ABOUTME: Resolves activity levels and goals, warning on unknown ids.
package calculator

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutriplan/internal/catalog"
)

// Calculator turns a health profile into metrics, nutrition targets and meal
// timings. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	logger *log.Logger
}

// New creates a Calculator. A nil logger uses the default charm logger.
func New(logger *log.Logger) *Calculator {
	if logger == nil {
		logger = log.Default().WithPrefix("calculator")
	}
	return &Calculator{logger: logger}
}

// activityMultiplier resolves an activity level multiplier, falling back to
// sedentary for unknown ids.
func (c *Calculator) activityMultiplier(id string) float64 {
	a, ok := catalog.LookupActivityLevel(id)
	if !ok {
		c.logger.Warn("unknown activity level, using sedentary multiplier",
			"id", id, "multiplier", catalog.SedentaryMultiplier)
		return catalog.SedentaryMultiplier
	}
	return a.Multiplier
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// roundInt rounds to the nearest integer, halves away from zero.
func roundInt(x float64) int {
	return int(math.Round(x))
}
