package inmemory

import (
	"sync"

	"daynight/internal/domain/cycle"
)

type Snapshot struct {
	Ticks           uint64            `json:"ticks"`
	PhaseSwitches   uint64            `json:"phase_switches"`
	LightmapSkips   uint64            `json:"lightmap_skips"`
	PersistFailures uint64            `json:"persist_failures"`
	ByPhase         map[string]uint64 `json:"switches_by_phase"`
	SkipsByPhase    map[string]uint64 `json:"lightmap_skips_by_phase"`
	Controls        map[string]uint64 `json:"controls"`
}

type Recorder struct {
	mu              sync.Mutex
	ticks           uint64
	persistFailures uint64
	byPhase         map[string]uint64
	skips           map[string]uint64
	controls        map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byPhase:  map[string]uint64{},
		skips:    map[string]uint64{},
		controls: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *Recorder) RecordPhaseSwitch(to cycle.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPhase[string(to)]++
}

func (r *Recorder) RecordLightmapSkip(phase cycle.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips[string(phase)]++
}

func (r *Recorder) RecordPersistFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistFailures++
}

func (r *Recorder) RecordControl(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[kind]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Ticks:           r.ticks,
		PersistFailures: r.persistFailures,
		ByPhase:         copyCounts(r.byPhase),
		SkipsByPhase:    copyCounts(r.skips),
		Controls:        copyCounts(r.controls),
	}
	for _, v := range r.byPhase {
		out.PhaseSwitches += v
	}
	for _, v := range r.skips {
		out.LightmapSkips += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
