package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/pkg/httpcontext"
	statsUC "github.com/fastygo/pomodoro/usecase/stats"
)

type StatsHandler struct {
	baseHandler
	uc *statsUC.UseCase
}

func NewStatsHandler(uc *statsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Seven-day completion chart and recent tasks
// @Tags stats
// @Router /api/stats/{userId} [get]
func (h *StatsHandler) Get(ctx *fasthttp.RequestCtx) {
	userID, ok := h.pathID(ctx, "userId")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, stats)
}

// @Summary Full completion history
// @Tags stats
// @Router /api/history/{userId} [get]
func (h *StatsHandler) History(ctx *fasthttp.RequestCtx) {
	userID, ok := h.pathID(ctx, "userId")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.History(stdCtx, userID)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}
