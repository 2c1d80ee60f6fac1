package domain

import "strings"

// Todo is an active, uncompleted task owned by a user.
type Todo struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	TaskName string  `json:"task_name"`
	DueDate  *string `json:"due_date"`
	Color    *string `json:"color"`
}

// TodoSort selects the ordering of a todo listing.
type TodoSort string

const (
	SortByDueDate TodoSort = "due_date"
	SortByCreated TodoSort = "created"
	SortByName    TodoSort = "name"
)

// ParseTodoSort maps a query value to a known ordering, defaulting to due date.
func ParseTodoSort(value string) TodoSort {
	switch TodoSort(strings.ToLower(strings.TrimSpace(value))) {
	case SortByCreated:
		return SortByCreated
	case SortByName:
		return SortByName
	default:
		return SortByDueDate
	}
}

// Normalize trims the task fields, turning blank optional values into nil,
// and rejects an empty task name.
func (t *Todo) Normalize() error {
	t.TaskName = strings.TrimSpace(t.TaskName)
	if t.TaskName == "" {
		return ErrTaskNameRequired
	}
	t.DueDate = optional(t.DueDate)
	t.Color = optional(t.Color)
	return nil
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
