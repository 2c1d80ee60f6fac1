package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type UserRequest struct {
	Username string `json:"username"`
}

// SettingsRequest accepts timer values as numbers or numeric strings, since
// browser form inputs post strings.
type SettingsRequest struct {
	UserID       FlexInt  `json:"user_id"`
	PomodoroTime *FlexInt `json:"pomodoro_time"`
	BreakTime    *FlexInt `json:"break_time"`
}

type TodoRequest struct {
	TaskName string  `json:"task_name"`
	DueDate  *string `json:"due_date"`
	Color    *string `json:"color"`
}

// FlexInt is an integer that also decodes from a quoted decimal string.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", string(data))
	}
	*f = FlexInt(v)
	return nil
}

// IntPtr converts an optional FlexInt to an optional int.
func (f *FlexInt) IntPtr() *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}
