package tick

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"go.uber.org/zap"
)

var (
	ErrQueueFull    = errors.New("control queue full")
	ErrInvalidValue = cycle.ErrInvalidValue
)

type Config struct {
	TickHz         int
	QueueSize      int
	PersistTimeout time.Duration
	Resume         bool
	RunID          string
	Now            func() time.Time
}

type Deps struct {
	Light     ports.LightSink
	Material  ports.MaterialSink
	Lightmaps ports.LightmapRegistry
	Display   ports.DisplaySink
	Observers []ports.FrameObserver
	States    ports.PhaseStateStore
	Events    ports.PhaseEventRepository
	TxManager ports.TxManager
	Metrics   ports.TickMetrics
	Logger    *zap.Logger
}

// Runner owns a Cycle and is the only goroutine allowed to touch it. Other
// goroutines talk to it through the control queue and Latest.
// A missing lightmap set is warned about once per phase entry; every skipped
// swap is still recorded in metrics.
type Runner struct {
	cfg   Config
	deps  Deps
	cycle *cycle.Cycle
	log   *zap.Logger

	commands chan command
	latest   atomic.Pointer[cycle.Frame]

	lastPhase       cycle.Phase
	missingLightmap cycle.Phase
}

func DefaultConfig() Config {
	return Config{
		TickHz:         30,
		QueueSize:      64,
		PersistTimeout: 2 * time.Second,
		Now:            time.Now,
	}
}

func NewRunner(c *cycle.Cycle, cfg Config, deps Deps) *Runner {
	def := DefaultConfig()
	if cfg.TickHz <= 0 {
		cfg.TickHz = def.TickHz
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = def.PersistTimeout
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		deps:      deps,
		cycle:     c,
		log:       logger.With(zap.String("component", "tick")),
		commands:  make(chan command, cfg.QueueSize),
		lastPhase: c.Classify().Phase,
	}
}

// Subscribe adds a frame observer. It must be called before Start.
func (r *Runner) Subscribe(o ports.FrameObserver) {
	r.deps.Observers = append(r.deps.Observers, o)
}

// Start restores a persisted clock when configured, applies the day lightmaps
// and publishes the initial frame.
func (r *Runner) Start(ctx context.Context) error {
	restored := false
	if r.cfg.Resume && r.deps.States != nil {
		state, ok, err := r.deps.States.Get(ctx)
		if err != nil {
			return fmt.Errorf("load phase state: %w", err)
		}
		if ok {
			if err := r.cycle.Restore(state.Hour, state.Day); err != nil {
				return fmt.Errorf("restore clock: %w", err)
			}
			restored = true
			r.log.Info("clock restored", zap.Float64("hour", state.Hour), zap.Int64("day", state.Day))
		}
	}

	r.applyLightmaps(cycle.PhaseDay)

	frame := r.cycle.Frame()
	r.lastPhase = frame.Reading.Phase
	if !restored {
		r.saveState(ctx, frame)
	}
	r.publish(frame)
	return nil
}

// Tick runs one simulation step in fixed order: controls, clock, targets,
// smoothing, light and material, lightmaps, display, persistence, observers.
func (r *Runner) Tick(ctx context.Context, dt float64) cycle.Frame {
	r.drainCommands()

	frame := r.cycle.Step(dt)
	cfg := r.cycle.Config()

	if r.deps.Light != nil {
		r.deps.Light.SetIntensity(frame.Visual.Intensity)
	}
	if r.deps.Material != nil {
		r.deps.Material.SetFloat(cfg.BlendParam, frame.Visual.Blend)
		r.deps.Material.SetColor(cfg.ColorParam, frame.Visual.Color)
	}
	r.applyLightmaps(frame.Reading.Phase)
	if r.deps.Display != nil {
		r.deps.Display.SetText(frame.Clock)
	}

	if frame.Reading.Phase != r.lastPhase {
		r.recordSwitch(ctx, r.lastPhase, frame)
		r.lastPhase = frame.Reading.Phase
	}

	r.publish(frame)
	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordTick()
	}
	return frame
}

// Run ticks at the configured rate using wall-clock deltas until ctx ends.
// On exit it saves the current clock so a resumed run continues from here.
func (r *Runner) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.cfg.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := r.cfg.Now()
	for {
		select {
		case <-ctx.Done():
			r.saveState(context.WithoutCancel(ctx), r.cycle.Frame())
			return ctx.Err()
		case <-ticker.C:
			now := r.cfg.Now()
			dt := now.Sub(last).Seconds()
			last = now
			if dt < 0 {
				dt = 0
			}
			r.Tick(ctx, dt)
		}
	}
}

func (r *Runner) Latest() (cycle.Frame, bool) {
	f := r.latest.Load()
	if f == nil {
		return cycle.Frame{}, false
	}
	return *f, true
}

func (r *Runner) publish(frame cycle.Frame) {
	r.latest.Store(&frame)
	for _, o := range r.deps.Observers {
		o.Observe(frame)
	}
}

func (r *Runner) applyLightmaps(phase cycle.Phase) {
	entries, err := r.cycle.Lightmaps(phase)
	if err != nil {
		if r.missingLightmap != phase {
			r.log.Warn("no lightmaps found for the selected time of day", zap.String("phase", string(phase)))
			r.missingLightmap = phase
		}
		if r.deps.Metrics != nil {
			r.deps.Metrics.RecordLightmapSkip(phase)
		}
		return
	}
	r.missingLightmap = ""
	if r.deps.Lightmaps != nil {
		r.deps.Lightmaps.Apply(phase, entries)
	}
}

func (r *Runner) recordSwitch(ctx context.Context, from cycle.Phase, frame cycle.Frame) {
	r.log.Info("phase switched",
		zap.String("from", string(from)),
		zap.String("to", string(frame.Reading.Phase)),
		zap.String("clock", frame.Clock),
		zap.Int64("day", frame.Day),
	)
	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordPhaseSwitch(frame.Reading.Phase)
	}
	if r.deps.States == nil {
		return
	}

	now := r.cfg.Now()
	state := stateFromFrame(frame, now)
	event := ports.PhaseEvent{
		RunID:      r.cfg.RunID,
		From:       from,
		To:         frame.Reading.Phase,
		Hour:       frame.Hour,
		Day:        frame.Day,
		OccurredAt: now,
	}

	pctx, cancel := context.WithTimeout(ctx, r.cfg.PersistTimeout)
	defer cancel()
	err := r.runInTx(pctx, func(txCtx context.Context) error {
		if err := r.deps.States.Save(txCtx, state); err != nil {
			return fmt.Errorf("save phase state: %w", err)
		}
		if r.deps.Events == nil {
			return nil
		}
		if err := r.deps.Events.Append(txCtx, event); err != nil {
			return fmt.Errorf("append phase event: %w", err)
		}
		return nil
	})
	if err != nil {
		r.persistFailed(err)
	}
}

func (r *Runner) saveState(ctx context.Context, frame cycle.Frame) {
	if r.deps.States == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, r.cfg.PersistTimeout)
	defer cancel()
	if err := r.deps.States.Save(pctx, stateFromFrame(frame, r.cfg.Now())); err != nil {
		r.persistFailed(err)
	}
}

func (r *Runner) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.deps.TxManager == nil {
		return fn(ctx)
	}
	return r.deps.TxManager.RunInTx(ctx, fn)
}

func (r *Runner) persistFailed(err error) {
	r.log.Error("persist phase state", zap.Error(err))
	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordPersistFailure()
	}
}

func stateFromFrame(frame cycle.Frame, at time.Time) ports.PhaseState {
	return ports.PhaseState{
		Phase:      frame.Reading.Phase,
		Hour:       frame.Hour,
		Day:        frame.Day,
		SwitchedAt: at,
	}
}
