package history

import (
	"time"

	"daynight/internal/domain/cycle"
)

type Request struct {
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Event struct {
	RunID      string      `json:"run_id"`
	From       cycle.Phase `json:"from"`
	To         cycle.Phase `json:"to"`
	Hour       float64     `json:"hour"`
	Day        int64       `json:"day"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type Response struct {
	Events []Event        `json:"events"`
	Counts map[string]int `json:"counts"`
}
