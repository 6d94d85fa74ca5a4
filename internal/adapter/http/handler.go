package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"daynight/internal/app/control"
	"daynight/internal/app/history"
	"daynight/internal/app/ports"
	"daynight/internal/app/status"
	"daynight/internal/app/tick"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"
)

type Handler struct {
	StatusUC  status.UseCase
	ControlUC control.UseCase
	HistoryUC history.UseCase
	KPI       kpiSnapshotProvider
	Logger    *zap.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	cycle := s.Group("/api/cycle")
	cycle.GET("/state", h.state)
	cycle.POST("/multiplier", h.multiplier)
	cycle.POST("/hour", h.hour)
	cycle.GET("/history", h.history)

	s.GET("/ops/kpi", h.kpi)
}

type sliderRequest struct {
	Value *float64 `json:"value"`
}

var errMissingValue = errors.New("missing value")

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) multiplier(c context.Context, ctx *app.RequestContext) {
	h.slider(c, ctx, control.KindMultiplier)
}

func (h Handler) hour(c context.Context, ctx *app.RequestContext) {
	h.slider(c, ctx, control.KindHour)
}

func (h Handler) slider(c context.Context, ctx *app.RequestContext, kind control.Kind) {
	var body sliderRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Value == nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", errMissingValue.Error())
		return
	}

	resp, err := h.ControlUC.Execute(c, control.Request{Kind: kind, Value: *body.Value})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusAccepted, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
		return
	}
	occurredFrom, err := queryInt(ctx, "occurred_from")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
		return
	}
	occurredTo, err := queryInt(ctx, "occurred_to")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
		return
	}

	resp, err := h.HistoryUC.Execute(c, history.Request{
		Limit:        int(limit),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string) (int64, error) {
	raw := string(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, control.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidValue):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, tick.ErrQueueFull):
		writeErrorBody(ctx, consts.StatusTooManyRequests, "control_queue_full", err.Error())
	case errors.Is(err, status.ErrNotStarted):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "not_started", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		if h.Logger != nil {
			h.Logger.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
