package cycle

type Rates struct {
	Intensity float64 `json:"intensity"`
	Blend     float64 `json:"blend"`
	Color     float64 `json:"color"`
}

func DefaultRates() Rates {
	return Rates{Intensity: 2, Blend: 2, Color: 0.5}
}

// SmoothToward moves current a dt*rate fraction of the way to target. The
// fraction is clamped to [0,1] so large steps land on the target instead of
// overshooting it.
func SmoothToward(current, target, rate, dt float64) float64 {
	if current == target {
		return current
	}
	return current + (target-current)*clamp01(dt*rate)
}

func SmoothColor(current, target Color, rate, dt float64) Color {
	if current == target {
		return current
	}
	return current.Lerp(target, dt*rate)
}

type VisualState struct {
	Intensity float64 `json:"sun_intensity"`
	Blend     float64 `json:"skybox_blend"`
	Color     Color   `json:"skybox_color"`
}

func (v VisualState) Smooth(t Targets, r Rates, dt float64) VisualState {
	return VisualState{
		Intensity: SmoothToward(v.Intensity, t.Intensity, r.Intensity, dt),
		Blend:     SmoothToward(v.Blend, t.Blend, r.Blend, dt),
		Color:     SmoothColor(v.Color, t.Color, r.Color, dt),
	}
}
