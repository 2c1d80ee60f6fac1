package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/pkg/httpcontext"
	"github.com/fastygo/pomodoro/web"
)

// PageHandler serves the HTML shells.
type PageHandler struct {
	baseHandler
	renderer *web.Renderer
}

func NewPageHandler(renderer *web.Renderer, adapter *httpcontext.Adapter, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		renderer:    renderer,
	}
}

// Serve returns a handler rendering the named page.
func (h *PageHandler) Serve(name string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		body, err := h.renderer.Render(name)
		if err != nil {
			h.logger.Error("page render failed", zap.String("page", name), zap.Error(err))
			ctx.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetStatusCode(http.StatusOK)
		ctx.SetBody(body)
	}
}
