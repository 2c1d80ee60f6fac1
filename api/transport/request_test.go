package transport

import (
	"encoding/json"
	"testing"
)

func TestSettingsRequestDecoding(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantPomodoro *int
		wantBreak    *int
		wantErr      bool
	}{
		{name: "numbers", body: `{"user_id": 1, "pomodoro_time": 30, "break_time": 10}`, wantPomodoro: intPtr(30), wantBreak: intPtr(10)},
		{name: "form strings", body: `{"user_id": "1", "pomodoro_time": "45", "break_time": " 15 "}`, wantPomodoro: intPtr(45), wantBreak: intPtr(15)},
		{name: "only pomodoro", body: `{"user_id": 1, "pomodoro_time": 50}`, wantPomodoro: intPtr(50)},
		{name: "explicit null", body: `{"user_id": 1, "break_time": null}`},
		{name: "fraction", body: `{"user_id": 1, "pomodoro_time": 25.5}`, wantErr: true},
		{name: "word", body: `{"user_id": 1, "pomodoro_time": "soon"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SettingsRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if req.UserID != 1 {
				t.Errorf("UserID = %d, want 1", req.UserID)
			}
			assertIntPtr(t, "pomodoro_time", req.PomodoroTime.IntPtr(), tt.wantPomodoro)
			assertIntPtr(t, "break_time", req.BreakTime.IntPtr(), tt.wantBreak)
		})
	}
}

func intPtr(v int) *int { return &v }

func assertIntPtr(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, got, want)
	case *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}
