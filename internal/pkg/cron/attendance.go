package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

const EventOpenShiftsName = "attendance.open_shifts"

// Publisher fans events out to connected clients.
type Publisher interface {
	PublishToMany(workerIDs []string, event sse.Event)
}

// OpenShift is one record left without an exit time.
type OpenShift struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Date       string `json:"date"`
	Shift      int    `json:"shift"`
	EntryTime  string `json:"entry_time"`
}

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	publisher      Publisher
	interval       time.Duration
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	publisher Publisher,
	interval time.Duration,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		publisher:      publisher,
		interval:       interval,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_open_shifts", j.interval, j.FlagOpenShifts)
}

// FlagOpenShifts reports shifts from previous days that never got an exit
// time. Records are left untouched.
func (j *AttendanceJobs) FlagOpenShifts(ctx context.Context) error {
	today := j.now().Format("2006-01-02")

	open, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open shifts: %w", err)
	}
	if len(open) == 0 {
		slog.Debug("Cron: no open shifts found")
		return nil
	}

	shifts := make([]OpenShift, 0, len(open))
	for _, r := range open {
		shifts = append(shifts, OpenShift{
			WorkerID:   r.WorkerID,
			WorkerName: r.WorkerName,
			Date:       r.Date,
			Shift:      r.Shift,
			EntryTime:  r.EntryTime,
		})
	}
	slog.Warn("Cron: open shifts found", "count", len(shifts), "before", today)

	if j.publisher == nil {
		return nil
	}

	admins, err := j.workerRepo.ListByRole(ctx, worker.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}

	j.publisher.PublishToMany(ids, sse.Event{
		Event: EventOpenShiftsName,
		Data:  shifts,
	})
	return nil
}
