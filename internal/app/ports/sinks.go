package ports

import "daynight/internal/domain/cycle"

type LightSink interface {
	SetIntensity(v float64)
}

type MaterialSink interface {
	SetFloat(name string, v float64)
	SetColor(name string, c cycle.Color)
}

// LightmapRegistry replaces the globally active lightmaps wholesale.
type LightmapRegistry interface {
	Apply(phase cycle.Phase, entries []cycle.LightmapEntry)
}

type DisplaySink interface {
	SetText(text string)
}

// FrameObserver receives every frame after the sinks were written. It is
// called on the tick goroutine and must not block.
type FrameObserver interface {
	Observe(frame cycle.Frame)
}

type FrameSource interface {
	Latest() (cycle.Frame, bool)
}

type CycleControls interface {
	SetMultiplier(v float64) error
	SetHour(h float64) error
}

type LightmapInfo struct {
	Phase       cycle.Phase `json:"phase"`
	Count       int         `json:"count"`
	Fingerprint string      `json:"fingerprint"`
	Swaps       uint64      `json:"swaps"`
}

type ActiveLightmaps interface {
	Active() (LightmapInfo, bool)
}
