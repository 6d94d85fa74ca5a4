package status

import (
	"context"
	"errors"

	"daynight/internal/app/ports"
)

var ErrNotStarted = errors.New("cycle not started")

type UseCase struct {
	Frames    ports.FrameSource
	States    ports.PhaseStateStore
	Lightmaps ports.ActiveLightmaps
}

func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	frame, ok := u.Frames.Latest()
	if !ok {
		return Response{}, ErrNotStarted
	}
	resp := Response{
		Frame:     frame,
		SkyboxHex: frame.Visual.Color.Hex(),
	}
	if u.Lightmaps != nil {
		if info, ok := u.Lightmaps.Active(); ok {
			resp.Lightmaps = &info
		}
	}
	if u.States != nil {
		state, ok, err := u.States.Get(ctx)
		if err != nil {
			return Response{}, err
		}
		if ok {
			resp.LastSwitch = &Switch{
				Phase:      state.Phase,
				Hour:       state.Hour,
				Day:        state.Day,
				SwitchedAt: state.SwitchedAt,
			}
		}
	}
	return resp, nil
}
