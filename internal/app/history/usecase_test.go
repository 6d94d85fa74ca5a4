package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"
)

func TestUseCase_ListsEventsAndCountsArrivals(t *testing.T) {
	repo := &fakeRepo{events: []ports.PhaseEvent{
		{RunID: "r1", From: cycle.PhaseNight, To: cycle.PhaseSunrise, Hour: 6, OccurredAt: time.Unix(3, 0)},
		{RunID: "r1", From: cycle.PhaseEvening, To: cycle.PhaseNight, Hour: 19, OccurredAt: time.Unix(2, 0)},
		{RunID: "r1", From: cycle.PhaseDay, To: cycle.PhaseEvening, Hour: 17, OccurredAt: time.Unix(1, 0)},
	}}
	uc := UseCase{Events: repo}

	out, err := uc.Execute(context.Background(), Request{Limit: 10, OccurredFrom: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out.Events))
	}
	if out.Counts["night"] != 1 || out.Counts["evening"] != 1 {
		t.Fatalf("unexpected counts: %v", out.Counts)
	}
	if repo.filter.Limit != 10 || !repo.filter.From.Equal(time.Unix(1, 0)) || !repo.filter.To.IsZero() {
		t.Fatalf("unexpected filter: %+v", repo.filter)
	}
}

func TestUseCase_DefaultsLimit(t *testing.T) {
	repo := &fakeRepo{}
	if _, err := (UseCase{Events: repo}).Execute(context.Background(), Request{}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.filter.Limit != maxLimit {
		t.Fatalf("limit=%d want %d", repo.filter.Limit, maxLimit)
	}
}

func TestUseCase_EmptyHistoryIsNotAnError(t *testing.T) {
	uc := UseCase{Events: &fakeRepo{err: ports.ErrNotFound}}
	out, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 0 {
		t.Fatalf("expected no events")
	}
}

func TestUseCase_RejectsInvertedWindow(t *testing.T) {
	uc := UseCase{Events: &fakeRepo{}}
	if _, err := uc.Execute(context.Background(), Request{OccurredFrom: 10, OccurredTo: 5}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

type fakeRepo struct {
	events []ports.PhaseEvent
	filter ports.PhaseEventFilter
	err    error
}

func (r *fakeRepo) Append(_ context.Context, _ ports.PhaseEvent) error { return nil }

func (r *fakeRepo) List(_ context.Context, filter ports.PhaseEventFilter) ([]ports.PhaseEvent, error) {
	r.filter = filter
	if r.err != nil {
		return nil, r.err
	}
	return r.events, nil
}
