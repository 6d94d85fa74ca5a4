// Package scene holds the in-process render state the tick loop writes into:
// the sun light, the skybox material, the active lightmap set and the clock
// label. Everything here is safe for concurrent readers.
package scene

import (
	"sync"

	"daynight/internal/domain/cycle"
)

type Light struct {
	mu        sync.RWMutex
	intensity float64
}

func NewLight(initial float64) *Light {
	return &Light{intensity: initial}
}

func (l *Light) SetIntensity(v float64) {
	l.mu.Lock()
	l.intensity = v
	l.mu.Unlock()
}

func (l *Light) Intensity() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

// Material is a named-parameter bag, the shape a skybox shader exposes.
type Material struct {
	mu     sync.RWMutex
	floats map[string]float64
	colors map[string]cycle.Color
}

func NewMaterial() *Material {
	return &Material{
		floats: map[string]float64{},
		colors: map[string]cycle.Color{},
	}
}

func (m *Material) SetFloat(name string, v float64) {
	m.mu.Lock()
	m.floats[name] = v
	m.mu.Unlock()
}

func (m *Material) SetColor(name string, c cycle.Color) {
	m.mu.Lock()
	m.colors[name] = c
	m.mu.Unlock()
}

func (m *Material) Float(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.floats[name]
	return v, ok
}

func (m *Material) Color(name string) (cycle.Color, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colors[name]
	return c, ok
}

type Label struct {
	mu   sync.RWMutex
	text string
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}
