package dashboard

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// DailyHours sums the worked hours of a worker's shifts on date. Open
// shifts contribute nothing.
func DailyHours(records []attendance.Record, workerID, date string) float64 {
	var total float64
	for _, r := range records {
		if r.WorkerID == workerID && r.Date == date {
			total += clock.Hours(r.EntryTime, r.ExitTime)
		}
	}
	return total
}

// PeriodHours sums a worker's hours over every date starting with prefix,
// "YYYY-MM" for a month or "YYYY" for a year.
func PeriodHours(records []attendance.Record, workerID, prefix string) float64 {
	var total float64
	for _, r := range records {
		if r.WorkerID == workerID && strings.HasPrefix(r.Date, prefix) {
			total += clock.Hours(r.EntryTime, r.ExitTime)
		}
	}
	return total
}

// DaysWorked counts distinct dates in month with at least one record,
// regardless of hours.
func DaysWorked(records []attendance.Record, workerID, month string) int {
	days := make(map[string]struct{})
	for _, r := range records {
		if r.WorkerID == workerID && strings.HasPrefix(r.Date, month) {
			days[r.Date] = struct{}{}
		}
	}
	return len(days)
}

// AverageDaily is monthHours per worked day rounded to one decimal, or 0
// when no day was worked.
func AverageDaily(monthHours float64, daysWorked int) float64 {
	if daysWorked == 0 {
		return 0
	}
	return clock.Round(monthHours/float64(daysWorked), 1)
}

// ActiveToday counts records dated date. A worker with two shifts counts twice.
func ActiveToday(records []attendance.Record, date string) int {
	n := 0
	for _, r := range records {
		if r.Date == date {
			n++
		}
	}
	return n
}

// ComputeStats builds a worker's dashboard figures around ref.
func ComputeStats(records []attendance.Record, workerID string, ref time.Time) dashboard.WorkerStats {
	today := ref.Format(dateLayout)
	month := ref.Format(monthLayout)
	year := ref.Format(yearLayout)

	monthHours := PeriodHours(records, workerID, month)
	days := DaysWorked(records, workerID, month)

	return dashboard.WorkerStats{
		TodayHours: clock.Round(DailyHours(records, workerID, today), 2),
		MonthHours: clock.Round(monthHours, 2),
		DaysWorked: days,
		YearHours:  clock.Round(PeriodHours(records, workerID, year), 2),
		AvgDaily:   AverageDaily(monthHours, days),
	}
}

// ComputeAdminStats builds the system-wide figures for ref's date.
func ComputeAdminStats(records []attendance.Record, workerCount int64, ref time.Time) dashboard.AdminStats {
	today := ref.Format(dateLayout)

	var hours float64
	for _, r := range records {
		if r.Date == today {
			hours += clock.Hours(r.EntryTime, r.ExitTime)
		}
	}

	return dashboard.AdminStats{
		TotalWorkers:    workerCount,
		ActiveToday:     ActiveToday(records, today),
		TotalHoursToday: clock.Round(hours, 2),
	}
}
