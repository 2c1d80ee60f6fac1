package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/api/transport"
	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
	appLogger "github.com/fastygo/pomodoro/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("response encoding failed", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error","code":"INTERNAL"}`)
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondJSON(ctx, status, transport.Message{Message: message})
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message))
}

// respondError maps domain errors to HTTP statuses. Internal and
// availability failures are logged and hidden behind a generic message.
func (h baseHandler) respondError(ctx context.Context, rc *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		appLogger.WithRequestID(ctx, h.logger).Error("request failed",
			zap.String("method", string(rc.Method())),
			zap.String("path", string(rc.Path())),
			zap.String("code", code),
			zap.Error(err))
		message = http.StatusText(status)
	} else if dErr := asDomainError(err); dErr != nil {
		message = dErr.Message
	}

	h.respondJSON(rc, status, transport.NewError(code, message))
}

// decode parses a JSON body and answers 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return false
	}
	return true
}

// pathID reads a positive integer path parameter and answers 400 otherwise.
func (h baseHandler) pathID(ctx *fasthttp.RequestCtx, name string) (int64, bool) {
	raw, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondInvalid(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable, string(domain.ErrCodeUnavailable)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

func asDomainError(err error) *domain.Error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr
	}
	return nil
}
