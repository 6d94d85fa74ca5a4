package history

import (
	"context"
	"errors"
	"time"

	"daynight/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const maxLimit = 500

type UseCase struct {
	Events ports.PhaseEventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 || req.OccurredFrom < 0 || req.OccurredTo < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	filter := ports.PhaseEventFilter{Limit: limit}
	if req.OccurredFrom > 0 {
		filter.From = time.Unix(req.OccurredFrom, 0)
	}
	if req.OccurredTo > 0 {
		filter.To = time.Unix(req.OccurredTo, 0)
	}

	events, err := u.Events.List(ctx, filter)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}

	out := Response{Events: make([]Event, 0, len(events)), Counts: map[string]int{}}
	for _, e := range events {
		out.Events = append(out.Events, Event{
			RunID:      e.RunID,
			From:       e.From,
			To:         e.To,
			Hour:       e.Hour,
			Day:        e.Day,
			OccurredAt: e.OccurredAt,
		})
		out.Counts[string(e.To)]++
	}
	return out, nil
}
