package worker

import "context"

// WorkerService defines account management beyond authentication
type WorkerService interface {
	// List returns every worker (admin)
	List(ctx context.Context) ([]WorkerResponse, error)

	// Get returns a single worker; the actor must be that worker or an admin
	Get(ctx context.Context, actor Actor, id string) (WorkerResponse, error)

	// UpdateProfile lets a worker edit their own identity fields
	UpdateProfile(ctx context.Context, actor Actor, req UpdateProfileRequest) (WorkerResponse, error)

	// AdminUpdate edits any worker (admin)
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (WorkerResponse, error)

	// Delete removes a worker and all of their attendance records (admin)
	Delete(ctx context.Context, actor Actor, id string) error

	// SetMainSignature stores the worker's report signature reference
	SetMainSignature(ctx context.Context, actor Actor, req SetMainSignatureRequest) (WorkerResponse, error)
}
