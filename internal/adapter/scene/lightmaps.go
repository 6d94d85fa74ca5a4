package scene

import (
	"strconv"
	"sync"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"github.com/cespare/xxhash/v2"
)

// LightmapRegistry stands in for the renderer's global lightmap array. Apply
// is called every tick; a swap only happens when the entries change.
type LightmapRegistry struct {
	mu          sync.RWMutex
	phase       cycle.Phase
	entries     []cycle.LightmapEntry
	fingerprint uint64
	swaps       uint64
	onSwap      func(phase cycle.Phase, entries []cycle.LightmapEntry)
}

func NewLightmapRegistry() *LightmapRegistry {
	return &LightmapRegistry{}
}

// OnSwap registers a callback run after each effective swap, outside the lock.
func (r *LightmapRegistry) OnSwap(fn func(phase cycle.Phase, entries []cycle.LightmapEntry)) {
	r.mu.Lock()
	r.onSwap = fn
	r.mu.Unlock()
}

func (r *LightmapRegistry) Apply(phase cycle.Phase, entries []cycle.LightmapEntry) {
	fp := Fingerprint(entries)

	r.mu.Lock()
	if r.swaps > 0 && fp == r.fingerprint && phase == r.phase {
		r.mu.Unlock()
		return
	}
	r.phase = phase
	r.entries = append(r.entries[:0], entries...)
	r.fingerprint = fp
	r.swaps++
	cb := r.onSwap
	r.mu.Unlock()

	if cb != nil {
		cb(phase, entries)
	}
}

func (r *LightmapRegistry) Entries() []cycle.LightmapEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]cycle.LightmapEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *LightmapRegistry) Active() (ports.LightmapInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.swaps == 0 {
		return ports.LightmapInfo{}, false
	}
	return ports.LightmapInfo{
		Phase:       r.phase,
		Count:       len(r.entries),
		Fingerprint: strconv.FormatUint(r.fingerprint, 16),
		Swaps:       r.swaps,
	}, true
}

// Fingerprint hashes the texture names in order.
func Fingerprint(entries []cycle.LightmapEntry) uint64 {
	d := xxhash.New()
	for _, e := range entries {
		_, _ = d.WriteString(e.Color)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(e.Direction)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
