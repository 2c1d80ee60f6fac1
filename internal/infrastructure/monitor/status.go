package monitor

import "time"

// Status is the outcome of one round of dependency checks.
type Status struct {
	Healthy   bool                   `json:"healthy"`
	Checks    map[string]CheckResult `json:"checks"`
	CheckedAt time.Time              `json:"checked_at"`
}

type CheckResult struct {
	Online   bool   `json:"online"`
	Required bool   `json:"required"`
	Error    string `json:"error,omitempty"`
}
