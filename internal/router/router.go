package router

import (
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/pomodoro/api/handler"
)

type Handlers struct {
	User   *apiHandler.UserHandler
	Todo   *apiHandler.TodoHandler
	Stats  *apiHandler.StatsHandler
	Health *apiHandler.HealthHandler
	Page   *apiHandler.PageHandler
}

// New registers every route. Static assets are served from staticDir when
// it is non-empty.
func New(handlers Handlers, staticDir string) *router.Router {
	r := router.New()
	r.NotFound = notFound

	r.GET("/health", handlers.Health.Check)

	// Users
	r.POST("/api/user", handlers.User.Login)
	r.GET("/api/users", handlers.User.List)
	r.DELETE("/api/user/{id}", handlers.User.Delete)
	r.POST("/api/user/settings", handlers.User.UpdateSettings)

	// Todos
	r.GET("/api/todos/{userId}", handlers.Todo.List)
	r.POST("/api/todos/{userId}", handlers.Todo.Create)
	r.POST("/api/todos/complete/{id}", handlers.Todo.Complete)
	r.PUT("/api/todo/{id}", handlers.Todo.Update)
	r.DELETE("/api/todo/{id}", handlers.Todo.Delete)

	// Stats
	r.GET("/api/stats/{userId}", handlers.Stats.Get)
	r.GET("/api/history/{userId}", handlers.Stats.History)

	if handlers.Page != nil {
		r.GET("/", handlers.Page.Serve("index"))
		r.GET("/add", handlers.Page.Serve("add"))
		r.GET("/prepare", handlers.Page.Serve("prepare"))
		r.GET("/work", handlers.Page.Serve("work"))
		r.GET("/history", handlers.Page.Serve("history"))
	}

	if staticDir != "" {
		r.ServeFiles("/static/{filepath:*}", staticDir)
	}

	return r
}

func notFound(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusNotFound)
	ctx.SetBodyString(`{"error":"route not found","code":"NOT_FOUND"}`)
}
