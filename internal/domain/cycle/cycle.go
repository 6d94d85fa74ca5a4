package cycle

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultBlendParam = "_Day_Night_Cycle"
	DefaultColorParam = "_Horizontal_color"
)

type Config struct {
	StartHour        float64
	Multiplier       float64
	InitialIntensity float64
	Boundaries       Boundaries
	Palette          Palette
	Targets          TargetTable
	Rates            Rates
	Lightmaps        LightmapSets
	BlendParam       string
	ColorParam       string
}

func DefaultConfig() Config {
	p := DefaultPalette()
	return Config{
		StartHour:        DefaultStartHour,
		Multiplier:       1,
		InitialIntensity: 2,
		Boundaries:       DefaultBoundaries(),
		Palette:          p,
		Targets:          DefaultTargetTable(p),
		Rates:            DefaultRates(),
		Lightmaps:        LightmapSets{},
		BlendParam:       DefaultBlendParam,
		ColorParam:       DefaultColorParam,
	}
}

func (c Config) Validate() error {
	var errs []error
	if err := c.Boundaries.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Targets.Validate(); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]float64{
		"start_hour":        c.StartHour,
		"multiplier":        c.Multiplier,
		"initial_intensity": c.InitialIntensity,
		"rates.intensity":   c.Rates.Intensity,
		"rates.blend":       c.Rates.Blend,
		"rates.color":       c.Rates.Color,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s is not finite", ErrInvalidValue, name))
		}
	}
	if c.Rates.Intensity < 0 || c.Rates.Blend < 0 || c.Rates.Color < 0 {
		errs = append(errs, fmt.Errorf("%w: smoothing rates must be >= 0", ErrInvalidValue))
	}
	return errors.Join(errs...)
}

// Frame is everything one tick derives: the clock reading, the raw targets
// and the smoothed state that gets written to the sinks.
type Frame struct {
	Seq        uint64      `json:"seq"`
	Hour       float64     `json:"hour"`
	Day        int64       `json:"day"`
	Clock      string      `json:"clock"`
	Multiplier float64     `json:"multiplier"`
	Reading    Reading     `json:"reading"`
	Targets    Targets     `json:"targets"`
	Visual     VisualState `json:"visual"`
}

// Cycle is the day-night state machine. It is not safe for concurrent use;
// callers confine it to one tick goroutine.
type Cycle struct {
	cfg    Config
	clock  Clock
	visual VisualState
	seq    uint64
}

func New(cfg Config) (*Cycle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Lightmaps == nil {
		cfg.Lightmaps = LightmapSets{}
	}
	return &Cycle{
		cfg:   cfg,
		clock: NewClock(cfg.StartHour, cfg.Multiplier),
		visual: VisualState{
			Intensity: cfg.InitialIntensity,
			Blend:     0,
			Color:     cfg.Palette.Day,
		},
	}, nil
}

// Step advances the clock by dt seconds, reclassifies and smooths the visual
// state toward the new targets.
func (c *Cycle) Step(dt float64) Frame {
	c.clock.Advance(dt)
	reading := c.Classify()
	targets := c.cfg.Targets.Targets(reading)
	c.visual = c.visual.Smooth(targets, c.cfg.Rates, dt)
	c.seq++
	return c.frame(reading, targets)
}

// Frame reports the current state without advancing time.
func (c *Cycle) Frame() Frame {
	reading := c.Classify()
	return c.frame(reading, c.cfg.Targets.Targets(reading))
}

func (c *Cycle) frame(r Reading, t Targets) Frame {
	return Frame{
		Seq:        c.seq,
		Hour:       c.clock.Hour(),
		Day:        c.clock.Day(),
		Clock:      c.clock.Display(),
		Multiplier: c.clock.Multiplier(),
		Reading:    r,
		Targets:    t,
		Visual:     c.visual,
	}
}

func (c *Cycle) Classify() Reading {
	return c.cfg.Boundaries.Classify(c.clock.Hour())
}

func (c *Cycle) SetMultiplier(v float64) error { return c.clock.SetMultiplier(v) }

func (c *Cycle) SetHour(h float64) error { return c.clock.SetHour(h) }

// Restore places the clock at a persisted position, keeping the multiplier.
func (c *Cycle) Restore(hour float64, day int64) error {
	if err := c.clock.SetHour(hour); err != nil {
		return err
	}
	c.clock.day = day
	return nil
}

func (c *Cycle) Hour() float64 { return c.clock.Hour() }

func (c *Cycle) Visual() VisualState { return c.visual }

func (c *Cycle) Lightmaps(p Phase) ([]LightmapEntry, error) {
	return c.cfg.Lightmaps.For(p)
}

func (c *Cycle) Config() Config { return c.cfg }
