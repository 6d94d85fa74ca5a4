package cycle

import (
	"errors"
	"fmt"
	"math"
)

const (
	HoursPerDay      = 24.0
	SecondsPerHour   = 3600.0
	SecondsPerDay    = HoursPerDay * SecondsPerHour
	DefaultStartHour = 8.0

	maxDayOffset = 1 << 53
)

var ErrInvalidValue = errors.New("invalid value")

// Clock keeps time of day as seconds so integral advances stay exact.
type Clock struct {
	seconds    float64
	day        int64
	multiplier float64
}

func NewClock(startHour, multiplier float64) Clock {
	c := Clock{multiplier: multiplier}
	_ = c.SetHour(startHour)
	return c
}

// Advance moves the clock forward by dt real seconds scaled by the multiplier.
// A negative multiplier runs the clock backwards across midnight.
func (c *Clock) Advance(dt float64) {
	delta := dt * c.multiplier
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	c.addSeconds(delta)
}

func (c *Clock) SetMultiplier(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: multiplier %v", ErrInvalidValue, v)
	}
	c.multiplier = v
	return nil
}

// SetHour jumps to an absolute hour of the current day. Values outside [0,24)
// roll into neighbouring days the way date arithmetic would.
func (c *Clock) SetHour(h float64) error {
	if err := ValidateHour(h); err != nil {
		return err
	}
	rem := math.Mod(h, HoursPerDay)
	c.seconds = 0
	c.day = addDays(c.day, math.Trunc(h/HoursPerDay))
	c.addSeconds(rem * SecondsPerHour)
	return nil
}

// ValidateHour rejects hours that are not finite or whose day offset cannot be
// counted exactly.
func ValidateHour(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || math.Abs(h/HoursPerDay) > maxDayOffset {
		return fmt.Errorf("%w: hour %v", ErrInvalidValue, h)
	}
	return nil
}

// addSeconds keeps seconds in [0, SecondsPerDay) for any finite delta.
// The day counter saturates instead of overflowing.
func (c *Clock) addSeconds(delta float64) {
	rem := math.Mod(delta, SecondsPerDay)
	days := math.Trunc(delta / SecondsPerDay)
	s := c.seconds + rem
	if s < 0 {
		s += SecondsPerDay
		days--
	}
	if s >= SecondsPerDay {
		s -= SecondsPerDay
		days++
	}
	if s < 0 || s >= SecondsPerDay {
		s = 0
	}
	c.seconds = s
	c.day = addDays(c.day, days)
}

func addDays(day int64, n float64) int64 {
	switch {
	case n >= math.MaxInt64:
		return math.MaxInt64
	case n <= math.MinInt64:
		return math.MinInt64
	}
	d := int64(n)
	if d > 0 && day > math.MaxInt64-d {
		return math.MaxInt64
	}
	if d < 0 && day < math.MinInt64-d {
		return math.MinInt64
	}
	return day + d
}

func (c Clock) Hour() float64 { return c.seconds / SecondsPerHour }

func (c Clock) Seconds() float64 { return c.seconds }

func (c Clock) Day() int64 { return c.day }

func (c Clock) Multiplier() float64 { return c.multiplier }

// Display renders the clock as HH:mm with minutes truncated.
func (c Clock) Display() string {
	minutes := int(c.seconds / 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WrapHour folds any finite hour into [0,24).
func WrapHour(h float64) float64 {
	w := math.Mod(h, HoursPerDay)
	if w < 0 {
		w += HoursPerDay
	}
	if w >= HoursPerDay {
		w = 0
	}
	return w
}
