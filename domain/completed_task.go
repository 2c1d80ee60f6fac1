package domain

import "time"

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

// CompletedTask is the immutable history record created when a todo is completed.
type CompletedTask struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"-"`
	TaskName    string `json:"task_name"`
	CompletedAt string `json:"completed_at"`
}

// CalendarDate formats t as a storage date in t's own location.
func CalendarDate(t time.Time) string {
	return t.Format(DateLayout)
}
