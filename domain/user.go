package domain

import (
	"math"
	"strings"
)

const (
	DefaultPomodoroTime = 25
	DefaultBreakTime    = 5
)

// User is a named identity owning todos and completion history.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PomodoroTime int    `json:"pomodoro_time"`
	BreakTime    int    `json:"break_time"`
}

// UserSummary is the listing projection of a user.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Settings is a partial update of a user's timer configuration.
// Nil fields keep their stored values.
type Settings struct {
	PomodoroTime *int
	BreakTime    *int
}

// MaxTimerMinutes is the largest value the INTEGER timer columns hold.
const MaxTimerMinutes = math.MaxInt32

// Validate rejects timer values outside 1..MaxTimerMinutes.
func (s Settings) Validate() error {
	for _, v := range []*int{s.PomodoroTime, s.BreakTime} {
		if v != nil && (*v <= 0 || *v > MaxTimerMinutes) {
			return ErrInvalidTimer
		}
	}
	return nil
}

// Apply merges the supplied fields into u.
func (s Settings) Apply(u *User) {
	if u == nil {
		return
	}
	if s.PomodoroTime != nil {
		u.PomodoroTime = *s.PomodoroTime
	}
	if s.BreakTime != nil {
		u.BreakTime = *s.BreakTime
	}
}

// NormalizeUsername trims surrounding whitespace and rejects empty names.
func NormalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUsernameRequired
	}
	return name, nil
}
