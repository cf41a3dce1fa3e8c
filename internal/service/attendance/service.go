package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

// EventSavedName is the SSE event published after every successful submission.
const EventSavedName = "attendance.saved"

// Publisher fans events out to connected clients.
type Publisher interface {
	PublishToMany(userIDs []string, event sse.Event)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	publisher Publisher
	now       func() time.Time
}

// Submit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, actor worker.Actor, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitResponse{}, err
	}

	if !actor.CanActFor(req.WorkerID) {
		return attendance.SubmitResponse{}, attendance.ErrForbiddenWorker
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return attendance.SubmitResponse{}, err
		}
		return attendance.SubmitResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}
	if strings.TrimSpace(req.WorkerName) == "" {
		req.WorkerName = w.FullName()
	}

	existing, err := s.AttendanceRepository.ListByWorkerAndDate(ctx, req.WorkerID, req.Date)
	if err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to load day records: %w", err)
	}

	result, err := Reconcile(existing, req.Submission(), s.now())
	if err != nil {
		return attendance.SubmitResponse{}, err
	}

	if err := s.AttendanceRepository.Save(ctx, result.Record); err != nil {
		return attendance.SubmitResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	slog.Info("Attendance recorded",
		"worker_id", result.Record.WorkerID,
		"date", result.Record.Date,
		"shift", result.Record.Shift,
		"action", result.Action,
		"actor_id", actor.WorkerID,
	)

	resp := attendance.SubmitResponse{
		Action: result.Action,
		Record: attendance.ToRecordResponse(result.Record),
	}
	s.notify(ctx, resp)

	return resp, nil
}

// notify tells the owning worker and every admin that a record changed.
// Delivery is best effort and never fails the submission.
func (s *AttendanceServiceImpl) notify(ctx context.Context, resp attendance.SubmitResponse) {
	if s.publisher == nil {
		return
	}

	recipients := []string{resp.Record.WorkerID}
	admins, err := s.WorkerRepository.ListByRole(ctx, worker.RoleAdmin)
	if err != nil {
		slog.Warn("Failed to list admins for attendance event", "error", err)
	}
	for _, a := range admins {
		if a.ID != resp.Record.WorkerID {
			recipients = append(recipients, a.ID)
		}
	}

	s.publisher.PublishToMany(recipients, sse.Event{
		Event: EventSavedName,
		Data:  resp,
	})
}

// ListByWorker implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByWorker(ctx context.Context, actor worker.Actor, workerID string, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if !actor.CanActFor(workerID) {
		return attendance.ListRecordsResponse{}, worker.ErrForbidden
	}

	if _, err := s.WorkerRepository.GetByID(ctx, workerID); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByWorker(ctx, workerID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return toListResponse(records, filter), nil
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, err := s.AttendanceRepository.ListAll(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return toListResponse(records, filter), nil
}

// toListResponse filters by month and orders newest date first, then by
// worker and shift.
func toListResponse(records []attendance.Record, filter attendance.ListFilter) attendance.ListRecordsResponse {
	var prefix string
	if filter.Month != nil {
		prefix = *filter.Month
	}

	selected := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if strings.HasPrefix(r.Date, prefix) {
			selected = append(selected, r)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.WorkerID != b.WorkerID {
			return a.WorkerID < b.WorkerID
		}
		return a.Shift < b.Shift
	})

	resp := attendance.ListRecordsResponse{
		TotalCount: len(selected),
		Records:    make([]attendance.RecordResponse, 0, len(selected)),
	}
	for _, r := range selected {
		resp.Records = append(resp.Records, attendance.ToRecordResponse(r))
	}
	return resp
}

// NewAttendanceService wires the attendance service. publisher may be nil.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	publisher Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		WorkerRepository:     workerRepo,
		publisher:            publisher,
		now:                  time.Now,
	}
}
