package memory

import (
	"context"

	"daynight/internal/app/ports"
)

type PhaseStateRepo struct {
	store *Store
}

func NewPhaseStateRepo(store *Store) PhaseStateRepo {
	return PhaseStateRepo{store: store}
}

func (r PhaseStateRepo) Get(ctx context.Context) (ports.PhaseState, bool, error) {
	if !inTx(ctx) {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	if r.store.state == nil {
		return ports.PhaseState{}, false, nil
	}
	return *r.store.state, true, nil
}

func (r PhaseStateRepo) Save(ctx context.Context, state ports.PhaseState) error {
	if !inTx(ctx) {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	r.store.state = &state
	return nil
}
