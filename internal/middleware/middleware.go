package middleware

import (
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
)

// Middleware wraps a fasthttp handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies middlewares so that the first one listed runs outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID makes sure every response carries an X-Request-ID header.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			httpcontext.RequestID(ctx)
			next(ctx)
		}
	}
}

// AccessLog writes one line per request.
func AccessLog(logger *zap.Logger, clk clock.Clock) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.Real()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := clk.Now()
			next(ctx)

			status := ctx.Response.StatusCode()
			fields := []zap.Field{
				zap.String("request_id", httpcontext.RequestID(ctx)),
				zap.String("method", string(ctx.Method())),
				zap.String("path", string(ctx.Path())),
				zap.Int("status", status),
				zap.Duration("latency", clk.Now().Sub(start)),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("http request", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
		}
	}
}

// Recover turns a handler panic into a 500 response.
func Recover(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.String("request_id", httpcontext.RequestID(ctx)),
						zap.String("path", string(ctx.Path())),
						zap.String("panic", fmt.Sprint(rec)),
						zap.Stack("stack"))
					ctx.ResetBody()
					ctx.Response.Header.SetContentType("application/json")
					ctx.SetStatusCode(http.StatusInternalServerError)
					ctx.SetBodyString(`{"error":"internal server error","code":"INTERNAL"}`)
				}
			}()
			next(ctx)
		}
	}
}
