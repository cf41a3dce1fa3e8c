package worker

import "context"

// WorkerRepository defines data access for worker accounts.
type WorkerRepository interface {
	// Create stores a new worker. ID and timestamps must already be set.
	Create(ctx context.Context, w Worker) (Worker, error)

	// GetByID returns ErrWorkerNotFound when absent
	GetByID(ctx context.Context, id string) (Worker, error)

	// GetByEmail returns ErrWorkerNotFound when absent
	GetByEmail(ctx context.Context, email string) (Worker, error)

	// ExistsByNationalID is used to reject duplicate registrations
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)

	List(ctx context.Context) ([]Worker, error)
	ListByRole(ctx context.Context, role Role) ([]Worker, error)
	Count(ctx context.Context) (int64, error)

	// Update overwrites the stored worker with the same ID
	Update(ctx context.Context, w Worker) error

	Delete(ctx context.Context, id string) error
}
