package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Encoding: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithRequestID(ctx, log).Info("todo completed")
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["msg"] != "todo completed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "todo completed")
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp key missing")
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "chatty", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Debug("hidden")
	_ = log.Sync()
	if buf.Len() != 0 {
		t.Errorf("debug entry written at fallback level: %q", buf.String())
	}

	log.Info("shown")
	_ = log.Sync()
	if buf.Len() == 0 {
		t.Error("info entry not written")
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID = %q, want empty", got)
	}
}
