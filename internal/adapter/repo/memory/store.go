package memory

import (
	"sync"

	"daynight/internal/app/ports"
)

// Store is a process-local stand-in for the postgres tables, used when no DSN
// is configured and in tests.
type Store struct {
	mu     sync.RWMutex
	state  *ports.PhaseState
	events []ports.PhaseEvent
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SeedState(state ports.PhaseState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &state
}
