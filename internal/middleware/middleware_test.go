package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}

	h := Chain(func(*fasthttp.RequestCtx) { order = append(order, "handler") }, mark("outer"), mark("inner"))
	h(&fasthttp.RequestCtx{})

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recover(zap.New(core))(func(*fasthttp.RequestCtx) { panic("kaboom") })

	var ctx fasthttp.RequestCtx
	h(&ctx)

	if ctx.Response.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("panic not logged: %v", logs.All())
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clk := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	h := Chain(func(ctx *fasthttp.RequestCtx) {
		clk.Advance(25 * time.Millisecond)
		ctx.SetStatusCode(http.StatusNotFound)
	}, RequestID(), AccessLog(zap.New(core), clk))

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/api/todos/1")
	ctx.Request.Header.Set(httpcontext.HeaderRequestID, "req-1")
	h(&ctx)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.WarnLevel {
		t.Fatalf("level = %s, want warn", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["request_id"] != "req-1" || fields["path"] != "/api/todos/1" || fields["status"] != int64(404) {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["latency"] != 25*time.Millisecond {
		t.Fatalf("latency = %v", fields["latency"])
	}
	if string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID)) != "req-1" {
		t.Fatal("request id not echoed")
	}
}
