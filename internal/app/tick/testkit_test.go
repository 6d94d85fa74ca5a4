package tick

import (
	"context"
	"testing"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"
)

func newTestRunner(t *testing.T, startHour float64, sets cycle.LightmapSets, deps Deps) *Runner {
	t.Helper()
	cfg := withLightmaps(withStart(cycle.DefaultConfig(), startHour), sets)
	c, err := cycle.New(cfg)
	if err != nil {
		t.Fatalf("cycle.New error: %v", err)
	}
	return NewRunner(c, Config{}, deps)
}

func withStart(cfg cycle.Config, hour float64) cycle.Config {
	cfg.StartHour = hour
	return cfg
}

func withLightmaps(cfg cycle.Config, sets cycle.LightmapSets) cycle.Config {
	cfg.Lightmaps = sets
	return cfg
}

func allLightmaps() cycle.LightmapSets {
	out := cycle.LightmapSets{}
	for _, p := range cycle.Phases {
		out[p] = cycle.LightmapSet{
			Colors:     []string{string(p) + "_0"},
			Directions: []string{string(p) + "_dir_0"},
		}
	}
	return out
}

type callLog struct {
	names []string
}

func (c *callLog) add(name string) { c.names = append(c.names, name) }

type fakeLight struct {
	calls *callLog
	value float64
}

func (l *fakeLight) SetIntensity(v float64) {
	l.value = v
	l.calls.add("light")
}

type fakeMaterial struct {
	calls *callLog
}

func (m *fakeMaterial) SetFloat(name string, _ float64) { m.calls.add("material.float:" + name) }

func (m *fakeMaterial) SetColor(name string, _ cycle.Color) { m.calls.add("material.color:" + name) }

type fakeRegistry struct {
	calls   *callLog
	active  cycle.Phase
	applied int
}

func (r *fakeRegistry) Apply(phase cycle.Phase, _ []cycle.LightmapEntry) {
	r.active = phase
	r.applied++
	r.calls.add("lightmaps:" + string(phase))
}

type fakeDisplay struct {
	calls *callLog
}

func (d *fakeDisplay) SetText(text string) { d.calls.add("display:" + text) }

type fakeObserver struct {
	frames []cycle.Frame
}

func (o *fakeObserver) Observe(f cycle.Frame) { o.frames = append(o.frames, f) }

type fakeMetrics struct {
	ticks           int
	switches        map[cycle.Phase]int
	lightmapSkips   int
	persistFailures int
	controls        map[string]int
}

func (m *fakeMetrics) RecordTick() { m.ticks++ }

func (m *fakeMetrics) RecordPhaseSwitch(to cycle.Phase) {
	if m.switches == nil {
		m.switches = map[cycle.Phase]int{}
	}
	m.switches[to]++
}

func (m *fakeMetrics) RecordLightmapSkip(_ cycle.Phase) { m.lightmapSkips++ }

func (m *fakeMetrics) RecordPersistFailure() { m.persistFailures++ }

func (m *fakeMetrics) RecordControl(kind string) {
	if m.controls == nil {
		m.controls = map[string]int{}
	}
	m.controls[kind]++
}

type fakeStateStore struct {
	state ports.PhaseState
	ok    bool
	err   error
	saves int
}

func (s *fakeStateStore) Get(_ context.Context) (ports.PhaseState, bool, error) {
	if s.err != nil {
		return ports.PhaseState{}, false, s.err
	}
	return s.state, s.ok, nil
}

func (s *fakeStateStore) Save(_ context.Context, state ports.PhaseState) error {
	if s.err != nil {
		return s.err
	}
	s.state = state
	s.ok = true
	s.saves++
	return nil
}

type fakeEventRepo struct {
	events []ports.PhaseEvent
}

func (r *fakeEventRepo) Append(_ context.Context, e ports.PhaseEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, _ ports.PhaseEventFilter) ([]ports.PhaseEvent, error) {
	return r.events, nil
}

type fakeTx struct {
	runs int
}

func (tx *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.runs++
	return fn(ctx)
}

var (
	_ ports.LightSink            = (*fakeLight)(nil)
	_ ports.MaterialSink         = (*fakeMaterial)(nil)
	_ ports.LightmapRegistry     = (*fakeRegistry)(nil)
	_ ports.DisplaySink          = (*fakeDisplay)(nil)
	_ ports.TickMetrics          = (*fakeMetrics)(nil)
	_ ports.PhaseStateStore      = (*fakeStateStore)(nil)
	_ ports.PhaseEventRepository = (*fakeEventRepo)(nil)
	_ ports.TxManager            = (*fakeTx)(nil)
)
