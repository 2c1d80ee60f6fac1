package repository

import "github.com/fastygo/pomodoro/domain"

// TodoOrderBy returns the ORDER BY clause shared by the SQL-backed todo
// repositories. Missing due dates always sort last: SQLite and PostgreSQL
// disagree on default NULL placement, so it is spelled out.
func TodoOrderBy(sort domain.TodoSort) string {
	switch sort {
	case domain.SortByCreated:
		return "ORDER BY id ASC"
	case domain.SortByName:
		return "ORDER BY task_name ASC, id ASC"
	default:
		return "ORDER BY CASE WHEN due_date IS NULL OR due_date = '' THEN 1 ELSE 0 END ASC, due_date ASC, id ASC"
	}
}

// RecentLimit bounds history listings used by the statistics view.
const RecentLimit = 5
