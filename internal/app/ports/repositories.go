package ports

import (
	"context"
	"time"

	"daynight/internal/domain/cycle"
)

type PhaseState struct {
	Phase      cycle.Phase
	Hour       float64
	Day        int64
	SwitchedAt time.Time
}

type PhaseEvent struct {
	RunID      string
	From       cycle.Phase
	To         cycle.Phase
	Hour       float64
	Day        int64
	OccurredAt time.Time
}

type PhaseStateStore interface {
	Get(ctx context.Context) (PhaseState, bool, error)
	Save(ctx context.Context, state PhaseState) error
}

type PhaseEventFilter struct {
	Limit int
	From  time.Time
	To    time.Time
}

type PhaseEventRepository interface {
	Append(ctx context.Context, event PhaseEvent) error
	List(ctx context.Context, filter PhaseEventFilter) ([]PhaseEvent, error)
}
