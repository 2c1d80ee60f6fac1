package domain

// Stats is the seven-day completion summary of one user.
type Stats struct {
	ChartLabels []string        `json:"chart_labels"`
	ChartData   []int           `json:"chart_data"`
	RecentTasks []CompletedTask `json:"recent_tasks"`
}

// DailyCount is the number of completions recorded on one calendar date.
type DailyCount struct {
	Date  string
	Count int
}
