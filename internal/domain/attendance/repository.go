package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
// Records have no surrogate id: (workerID, date, shift) is the key.
type AttendanceRepository interface {
	// ListAll returns every record in storage order
	ListAll(ctx context.Context) ([]Record, error)

	// ListByWorker returns all records of one worker in storage order
	ListByWorker(ctx context.Context, workerID string) ([]Record, error)

	// ListByWorkerAndDate returns the (at most two) records of a worker's day
	ListByWorkerAndDate(ctx context.Context, workerID string, date string) ([]Record, error)

	// ListOpenBefore returns records dated before date that have no exit time
	ListOpenBefore(ctx context.Context, date string) ([]Record, error)

	// Save inserts the record or overwrites the one with the same key
	Save(ctx context.Context, record Record) error

	// DeleteByWorker removes all records of a worker and returns how many
	DeleteByWorker(ctx context.Context, workerID string) (int64, error)
}
