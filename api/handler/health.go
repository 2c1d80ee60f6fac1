package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/internal/infrastructure/monitor"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthResponse struct {
	Status    string                         `json:"status"`
	Checks    map[string]monitor.CheckResult `json:"checks"`
	CheckedAt time.Time                      `json:"checked_at"`
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status := h.monitor.Check(stdCtx)
	resp := healthResponse{Status: "ok", Checks: status.Checks, CheckedAt: status.CheckedAt}
	if !status.Healthy {
		resp.Status = "degraded"
		h.respondJSON(ctx, http.StatusServiceUnavailable, resp)
		return
	}
	h.respondJSON(ctx, http.StatusOK, resp)
}
