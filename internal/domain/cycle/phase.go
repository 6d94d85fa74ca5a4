package cycle

import (
	"errors"
	"fmt"
	"math"
)

type Phase string

const (
	PhaseSunrise Phase = "sunrise"
	PhaseDay     Phase = "day"
	PhaseEvening Phase = "evening"
	PhaseNight   Phase = "night"
)

var Phases = []Phase{PhaseSunrise, PhaseDay, PhaseEvening, PhaseNight}

// Segment splits Night at midnight; every other phase is a single segment.
type Segment string

const (
	SegmentSunrise Segment = "sunrise"
	SegmentDay     Segment = "day"
	SegmentEvening Segment = "evening"
	SegmentDusk    Segment = "dusk"
	SegmentPredawn Segment = "predawn"
)

var Segments = []Segment{SegmentSunrise, SegmentDay, SegmentEvening, SegmentDusk, SegmentPredawn}

func (s Segment) Phase() Phase {
	switch s {
	case SegmentSunrise:
		return PhaseSunrise
	case SegmentDay:
		return PhaseDay
	case SegmentEvening:
		return PhaseEvening
	default:
		return PhaseNight
	}
}

type Reading struct {
	Phase   Phase   `json:"phase"`
	Segment Segment `json:"segment"`
	T       float64 `json:"progress"`
}

var ErrInvalidBoundaries = errors.New("invalid phase boundaries")

type Boundaries struct {
	Sunrise float64 `json:"sunrise"`
	Day     float64 `json:"day"`
	Evening float64 `json:"evening"`
	Night   float64 `json:"night"`
}

func DefaultBoundaries() Boundaries {
	return Boundaries{Sunrise: 6, Day: 8, Evening: 17, Night: 19}
}

func (b Boundaries) Validate() error {
	for _, v := range []float64{b.Sunrise, b.Day, b.Evening, b.Night} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite hour", ErrInvalidBoundaries)
		}
	}
	if !(0 <= b.Sunrise && b.Sunrise < b.Day && b.Day < b.Evening && b.Evening < b.Night && b.Night < HoursPerDay) {
		return fmt.Errorf("%w: want 0 <= sunrise(%g) < day(%g) < evening(%g) < night(%g) < 24",
			ErrInvalidBoundaries, b.Sunrise, b.Day, b.Evening, b.Night)
	}
	return nil
}

// Classify maps an hour to its phase. Lower bounds are inclusive, upper bounds
// exclusive; hours outside [0,24) are wrapped first.
func (b Boundaries) Classify(hour float64) Reading {
	h := WrapHour(hour)
	switch {
	case h >= b.Sunrise && h < b.Day:
		return Reading{Phase: PhaseSunrise, Segment: SegmentSunrise, T: progress(h-b.Sunrise, b.Day-b.Sunrise)}
	case h >= b.Day && h < b.Evening:
		return Reading{Phase: PhaseDay, Segment: SegmentDay, T: progress(h-b.Day, b.Evening-b.Day)}
	case h >= b.Evening && h < b.Night:
		return Reading{Phase: PhaseEvening, Segment: SegmentEvening, T: progress(h-b.Evening, b.Night-b.Evening)}
	case h >= b.Night:
		return Reading{Phase: PhaseNight, Segment: SegmentDusk, T: progress(h-b.Night, HoursPerDay-b.Night+b.Sunrise)}
	default:
		return Reading{Phase: PhaseNight, Segment: SegmentPredawn, T: progress(h, b.Sunrise)}
	}
}

func progress(offset, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return clamp01(offset / span)
}

// clamp01 also maps NaN to 0.
func clamp01(v float64) float64 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
