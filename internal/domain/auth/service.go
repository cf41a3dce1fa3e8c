package auth

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
)

type AuthService interface {
	// Register creates a worker account; the first account becomes admin
	Register(ctx context.Context, req RegisterRequest) (worker.WorkerResponse, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the presented token
	Logout(ctx context.Context, token string) error

	// Me returns the authenticated worker
	Me(ctx context.Context, actor worker.Actor) (worker.WorkerResponse, error)

	ChangePassword(ctx context.Context, actor worker.Actor, req ChangePasswordRequest) error

	// AdminResetPassword sets a worker's password to TemporaryPassword and
	// flags the account until the worker changes it
	AdminResetPassword(ctx context.Context, workerID string) error
}
