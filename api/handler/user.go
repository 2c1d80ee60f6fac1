package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/api/transport"
	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
	userUC "github.com/fastygo/pomodoro/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Log in by name, registering the user on first use
// @Tags users
// @Router /api/user [post]
func (h *UserHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.UserRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetOrCreate(stdCtx, req.Username)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, user)
}

// @Summary List users
// @Tags users
// @Router /api/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, users)
}

// @Summary Delete a user with all todos and history
// @Tags users
// @Router /api/user/{id} [delete]
func (h *UserHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "User and all related data deleted successfully")
}

// @Summary Update timer settings
// @Tags users
// @Router /api/user/settings [post]
func (h *UserHandler) UpdateSettings(ctx *fasthttp.RequestCtx) {
	var req transport.SettingsRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.UserID <= 0 {
		h.respondInvalid(ctx, "user_id is required")
		return
	}

	settings := domain.Settings{
		PomodoroTime: req.PomodoroTime.IntPtr(),
		BreakTime:    req.BreakTime.IntPtr(),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.UpdateSettings(stdCtx, int64(req.UserID), settings); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Settings updated successfully")
}
