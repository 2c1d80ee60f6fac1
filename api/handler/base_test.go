package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/pomodoro/api/transport"
	"github.com/fastygo/pomodoro/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUsernameRequired, http.StatusBadRequest, "INVALID"},
		{fmt.Errorf("wrap: %w", domain.ErrTodoNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.WrapError(domain.ErrCodeConflict, "constraint violation", errors.New("dup")), http.StatusConflict, "CONFLICT"},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{domain.Persistence("op", errors.New("boom")), http.StatusInternalServerError, "INTERNAL"},
		{errors.New("plain"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		status, code := mapError(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("mapError(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	h := newBaseHandler(nil, nil)

	var ctx fasthttp.RequestCtx
	h.respondError(context.Background(), &ctx, domain.Persistence("list todos", errors.New("disk I/O error at page 7")))

	if ctx.Response.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var body transport.ErrorBody
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Internal Server Error" || body.Code != "INTERNAL" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRespondErrorUsesDomainMessage(t *testing.T) {
	h := newBaseHandler(nil, nil)

	var ctx fasthttp.RequestCtx
	h.respondError(context.Background(), &ctx, domain.ErrUserNotFound)

	var body transport.ErrorBody
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ctx.Response.StatusCode() != http.StatusNotFound || body.Error != "user not found" {
		t.Fatalf("unexpected response: %d %+v", ctx.Response.StatusCode(), body)
	}
}

func TestPathID(t *testing.T) {
	h := newBaseHandler(nil, nil)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		var ctx fasthttp.RequestCtx
		ctx.SetUserValue("id", raw)
		if _, ok := h.pathID(&ctx, "id"); ok {
			t.Errorf("pathID(%q) accepted", raw)
		}
		if ctx.Response.StatusCode() != http.StatusBadRequest {
			t.Errorf("pathID(%q) status = %d", raw, ctx.Response.StatusCode())
		}
	}

	var ctx fasthttp.RequestCtx
	ctx.SetUserValue("id", "17")
	if id, ok := h.pathID(&ctx, "id"); !ok || id != 17 {
		t.Fatalf("pathID(17) = %d, %v", id, ok)
	}
}
