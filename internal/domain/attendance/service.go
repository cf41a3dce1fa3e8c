package attendance

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Submit reconciles an entry/exit pair into the worker's day and persists it
	Submit(ctx context.Context, actor worker.Actor, req SubmitRequest) (SubmitResponse, error)

	// ListByWorker returns one worker's records (self or admin)
	ListByWorker(ctx context.Context, actor worker.Actor, workerID string, filter ListFilter) (ListRecordsResponse, error)

	// ListAll returns every worker's records (admin)
	ListAll(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)
}
