package cycle

import "fmt"

type Span struct {
	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to" yaml:"to"`
}

func (s Span) At(t float64) float64 {
	return s.From + (s.To-s.From)*clamp01(t)
}

type ColorSpan struct {
	From Color `json:"from"`
	To   Color `json:"to"`
}

func (s ColorSpan) At(t float64) Color {
	return s.From.Lerp(s.To, t)
}

// Keyframe describes where the visual targets travel while a segment progresses
// from t=0 to t=1.
type Keyframe struct {
	Intensity Span      `json:"intensity"`
	Blend     Span      `json:"blend"`
	Color     ColorSpan `json:"color"`
}

type TargetTable map[Segment]Keyframe

type Targets struct {
	Intensity float64 `json:"sun_intensity"`
	Blend     float64 `json:"skybox_blend"`
	Color     Color   `json:"skybox_color"`
}

func DefaultTargetTable(p Palette) TargetTable {
	return TargetTable{
		SegmentSunrise: {
			Intensity: Span{From: 0.8, To: 2},
			Blend:     Span{From: 0, To: 0.25},
			Color:     ColorSpan{From: p.Dawn, To: p.Day},
		},
		SegmentDay: {
			Intensity: Span{From: 2, To: 2},
			Blend:     Span{From: 0, To: 0},
			Color:     ColorSpan{From: p.Day, To: p.Day},
		},
		SegmentEvening: {
			Intensity: Span{From: 1, To: 0.5},
			Blend:     Span{From: 0.25, To: 0.75},
			Color:     ColorSpan{From: p.Evening, To: p.Night},
		},
		SegmentDusk: {
			Intensity: Span{From: 0.5, To: 0.8},
			Blend:     Span{From: 0.75, To: 1},
			Color:     ColorSpan{From: p.Night, To: p.Dawn},
		},
		SegmentPredawn: {
			Intensity: Span{From: 0.5, To: 0.8},
			Blend:     Span{From: 1, To: 0},
			Color:     ColorSpan{From: p.Dawn, To: p.Day},
		},
	}
}

func (tt TargetTable) Validate() error {
	for _, s := range Segments {
		if _, ok := tt[s]; !ok {
			return fmt.Errorf("%w: target table missing segment %q", ErrInvalidValue, s)
		}
	}
	return nil
}

// Targets resolves the un-smoothed visual targets for a reading. A segment
// missing from the table yields the day keyframe.
func (tt TargetTable) Targets(r Reading) Targets {
	k, ok := tt[r.Segment]
	if !ok {
		k = tt[SegmentDay]
	}
	return Targets{
		Intensity: k.Intensity.At(r.T),
		Blend:     k.Blend.At(r.T),
		Color:     k.Color.At(r.T),
	}
}
