package dashboard

// WorkerStats summarises one worker's hours around a reference date.
// Hour totals are rounded to 2 decimals, AvgDaily to 1.
type WorkerStats struct {
	TodayHours float64 `json:"today_hours"`
	MonthHours float64 `json:"month_hours"`
	DaysWorked int     `json:"days_worked"`
	YearHours  float64 `json:"year_hours"`
	AvgDaily   float64 `json:"avg_daily"`
}

// AdminStats is the system-wide view for a reference date.
// ActiveToday counts records, not distinct workers: a worker with two
// shifts today counts twice.
type AdminStats struct {
	TotalWorkers    int64   `json:"total_workers"`
	ActiveToday     int     `json:"active_today"`
	TotalHoursToday float64 `json:"total_hours_today"`
}

type WorkerStatsResponse struct {
	WorkerID      string      `json:"worker_id"`
	ReferenceDate string      `json:"reference_date"` // Format: "YYYY-MM-DD"
	Stats         WorkerStats `json:"stats"`
}

type AdminStatsResponse struct {
	ReferenceDate string     `json:"reference_date"` // Format: "YYYY-MM-DD"
	Stats         AdminStats `json:"stats"`
}
