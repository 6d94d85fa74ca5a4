package tick

import (
	"fmt"
	"math"

	"daynight/internal/domain/cycle"

	"go.uber.org/zap"
)

type commandKind int

const (
	commandMultiplier commandKind = iota
	commandHour
)

func (k commandKind) String() string {
	if k == commandHour {
		return "hour"
	}
	return "multiplier"
}

type command struct {
	kind  commandKind
	value float64
}

// SetMultiplier queues a multiplier change for the next tick.
func (r *Runner) SetMultiplier(v float64) error {
	return r.enqueue(command{kind: commandMultiplier, value: v})
}

// SetHour queues an absolute clock change for the next tick.
func (r *Runner) SetHour(h float64) error {
	return r.enqueue(command{kind: commandHour, value: h})
}

func (r *Runner) enqueue(cmd command) error {
	if math.IsNaN(cmd.value) || math.IsInf(cmd.value, 0) {
		return fmt.Errorf("%w: %s %v", ErrInvalidValue, cmd.kind, cmd.value)
	}
	if cmd.kind == commandHour {
		if err := cycle.ValidateHour(cmd.value); err != nil {
			return err
		}
	}
	select {
	case r.commands <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) drainCommands() {
	for {
		select {
		case cmd := <-r.commands:
			r.apply(cmd)
		default:
			return
		}
	}
}

func (r *Runner) apply(cmd command) {
	var err error
	switch cmd.kind {
	case commandMultiplier:
		err = r.cycle.SetMultiplier(cmd.value)
	case commandHour:
		err = r.cycle.SetHour(cmd.value)
	}
	if err != nil {
		r.log.Warn("control rejected", zap.String("kind", cmd.kind.String()), zap.Error(err))
		return
	}
	r.log.Debug("control applied", zap.String("kind", cmd.kind.String()), zap.Float64("value", cmd.value))
	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordControl(cmd.kind.String())
	}
}
