package memory

import (
	"context"

	"daynight/internal/app/ports"
)

type PhaseEventRepo struct {
	store *Store
}

func NewPhaseEventRepo(store *Store) PhaseEventRepo {
	return PhaseEventRepo{store: store}
}

func (r PhaseEventRepo) Append(ctx context.Context, e ports.PhaseEvent) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	r.store.events = append(r.store.events, e)
	return nil
}

// List returns matching events newest first.
func (r PhaseEventRepo) List(ctx context.Context, filter ports.PhaseEventFilter) ([]ports.PhaseEvent, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	out := make([]ports.PhaseEvent, 0)
	for i := len(r.store.events) - 1; i >= 0; i-- {
		e := r.store.events[i]
		if !filter.From.IsZero() && e.OccurredAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.OccurredAt.After(filter.To) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
