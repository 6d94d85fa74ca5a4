package control

import (
	"context"
	"errors"
	"fmt"
	"math"

	"daynight/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid control request")

// UseCase forwards slider input to the tick loop. Changes land on the next tick.
type UseCase struct {
	Controls ports.CycleControls
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		return Response{}, fmt.Errorf("%w: value must be finite", ErrInvalidRequest)
	}

	var err error
	switch req.Kind {
	case KindMultiplier:
		err = u.Controls.SetMultiplier(req.Value)
	case KindHour:
		err = u.Controls.SetHour(req.Value)
	default:
		return Response{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}
	if err != nil {
		return Response{}, err
	}

	return Response{
		Kind:         req.Kind,
		Value:        req.Value,
		DisplayValue: fmt.Sprintf("%.2f", req.Value),
		Accepted:     true,
	}, nil
}
