// ABOUTME: Clock-time type and wake/sleep window arithmetic for scheduling.
// ABOUTME: Times are minutes since midnight; windows may cross midnight.
package clock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in a 24-hour day.
const MinutesPerDay = 24 * 60

// ErrInvalidTime is returned when a clock string is not a valid HH:MM time.
var ErrInvalidTime = errors.New("invalid clock time")

// Time is a wall-clock time of day in minutes since midnight (0-1439).
type Time int

// FromMinutes converts an absolute minute count to a time of day.
// Values outside a single day wrap around, including negative values.
func FromMinutes(m int) Time {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Time(m)
}

// Parse parses a 24-hour "HH:MM" (or "H:MM") string.
// Hours must be 0-23 and minutes 00-59; anything else is rejected.
func Parse(s string) (Time, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q (use HH:MM)", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 || strings.HasPrefix(hh, "+") {
		return 0, fmt.Errorf("%w: %q (hour must be 00-23)", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 || strings.HasPrefix(mm, "+") {
		return 0, fmt.Errorf("%w: %q (minute must be 00-59)", ErrInvalidTime, s)
	}

	return Time(hour*60 + minute), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour component (0-23).
func (t Time) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component (0-59).
func (t Time) Minute() int {
	return int(t) % 60
}

// Minutes returns minutes since midnight.
func (t Time) Minutes() int {
	return int(t)
}

// String formats the time as zero-padded "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML carry "HH:MM".
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Range is a start-end pair of clock times.
type Range struct {
	Start Time `json:"start" yaml:"start"`
	End   Time `json:"end" yaml:"end"`
}

// String formats the range as "HH:MM-HH:MM".
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Window is the waking interval between wake and sleep time.
// Offsets used by its methods are minutes after Wake.
type Window struct {
	Wake  Time
	Sleep Time
}

// ActiveMinutes returns the length of the waking interval.
// Sleep at or before Wake is treated as falling on the next day.
func (w Window) ActiveMinutes() int {
	if w.Sleep > w.Wake {
		return int(w.Sleep - w.Wake)
	}
	return MinutesPerDay - int(w.Wake) + int(w.Sleep)
}

// At returns the clock time offset minutes after wake, without clamping.
func (w Window) At(offset int) Time {
	return FromMinutes(int(w.Wake) + offset)
}

// Clamp bounds an offset to [0, ActiveMinutes].
func (w Window) Clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if active := w.ActiveMinutes(); offset > active {
		return active
	}
	return offset
}

// ClampAt returns the clock time for offset after bounding it to the window.
func (w Window) ClampAt(offset int) Time {
	return w.At(w.Clamp(offset))
}

// Fraction returns the offset lying frac of the way through the window, rounded
// to the nearest minute.
func (w Window) Fraction(frac float64) int {
	return int(math.Round(float64(w.ActiveMinutes()) * frac))
}

// Distribute places count meals across the window and returns their offsets.
//
// One meal sits at the midpoint. Two meals sit one hour after waking and
// three quarters of the way through the day. Three or more are centered in
// equal slices. Fractional minutes round to the nearest minute.
func (w Window) Distribute(count int) []int {
	if count <= 0 {
		return nil
	}

	active := w.ActiveMinutes()
	switch count {
	case 1:
		return []int{w.Fraction(0.5)}
	case 2:
		return []int{w.Clamp(60), w.Fraction(0.75)}
	}

	interval := float64(active) / float64(count)
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = int(math.Round(float64(i+1)*interval - interval/2))
	}
	return offsets
}

// Times converts offsets to clock times.
func (w Window) Times(offsets []int) []Time {
	times := make([]Time, len(offsets))
	for i, off := range offsets {
		times[i] = w.At(off)
	}
	return times
}
