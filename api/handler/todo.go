package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/api/transport"
	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
	todoUC "github.com/fastygo/pomodoro/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	uc *todoUC.UseCase
}

func NewTodoHandler(uc *todoUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List active todos
// @Tags todos
// @Param sort query string false "due_date (default), created or name"
// @Router /api/todos/{userId} [get]
func (h *TodoHandler) List(ctx *fasthttp.RequestCtx) {
	userID, ok := h.pathID(ctx, "userId")
	if !ok {
		return
	}
	sort := domain.ParseTodoSort(string(ctx.QueryArgs().Peek("sort")))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todos, err := h.uc.List(stdCtx, userID, sort)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, todos)
}

// @Summary Add a todo
// @Tags todos
// @Router /api/todos/{userId} [post]
func (h *TodoHandler) Create(ctx *fasthttp.RequestCtx) {
	userID, ok := h.pathID(ctx, "userId")
	if !ok {
		return
	}
	todo, ok := h.parseTodo(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.uc.Add(stdCtx, userID, todo)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.Created{ID: id, Message: "ToDo added successfully"})
}

// @Summary Edit a todo
// @Tags todos
// @Router /api/todo/{id} [put]
func (h *TodoHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}
	todo, ok := h.parseTodo(ctx)
	if !ok {
		return
	}
	todo.ID = id

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Update(stdCtx, todo); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "ToDo updated successfully")
}

// @Summary Delete a todo without recording it
// @Tags todos
// @Router /api/todo/{id} [delete]
func (h *TodoHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondMessage(ctx, http.StatusOK, "ToDo deleted successfully")
}

// @Summary Complete a todo, moving it into the history
// @Tags todos
// @Router /api/todos/complete/{id} [post]
func (h *TodoHandler) Complete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Complete(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "ToDo marked as completed")
}

func (h *TodoHandler) parseTodo(ctx *fasthttp.RequestCtx) (domain.Todo, bool) {
	var req transport.TodoRequest
	if !h.decode(ctx, &req) {
		return domain.Todo{}, false
	}
	return domain.Todo{
		TaskName: req.TaskName,
		DueDate:  req.DueDate,
		Color:    req.Color,
	}, true
}
