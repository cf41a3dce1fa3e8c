package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	worker.WorkerRepository
	jwt.Service
	throttle *loginThrottle
	now      func() time.Time
}

func NewAuthService(workerRepository worker.WorkerRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		WorkerRepository: workerRepository,
		Service:          jwtService,
		throttle:         newLoginThrottle(maxLoginFailures, loginFailureWindow),
		now:              time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	role, err := a.registrationRole(ctx, worker.Role(req.Role))
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if _, err := a.WorkerRepository.GetByEmail(ctx, req.Email); err == nil {
		return worker.WorkerResponse{}, worker.ErrEmailExists
	} else if !errors.Is(err, worker.ErrWorkerNotFound) {
		return worker.WorkerResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	nationalID := strings.ToUpper(strings.TrimSpace(req.NationalID))
	exists, err := a.WorkerRepository.ExistsByNationalID(ctx, nationalID)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to check national id: %w", err)
	}
	if exists {
		return worker.WorkerResponse{}, worker.ErrNationalIDExists
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	created, err := a.WorkerRepository.Create(ctx, worker.Worker{
		ID:                uuid.NewString(),
		Email:             req.Email,
		PasswordHash:      hash,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		NationalID:        nationalID,
		AffiliationNumber: strings.TrimSpace(req.AffiliationNumber),
		Role:              role,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	slog.Info("worker registered", "worker_id", created.ID, "role", created.Role)
	return worker.ToResponse(created), nil
}

// registrationRole makes the first account admin and allows a single admin.
func (a *AuthServiceImpl) registrationRole(ctx context.Context, requested worker.Role) (worker.Role, error) {
	count, err := a.WorkerRepository.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count workers: %w", err)
	}
	if count == 0 {
		return worker.RoleAdmin, nil
	}
	if requested != worker.RoleAdmin {
		return worker.RoleEmployee, nil
	}

	admins, err := a.WorkerRepository.ListByRole(ctx, worker.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) > 0 {
		return "", worker.ErrAdminExists
	}
	return worker.RoleAdmin, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if !a.throttle.Allow(req.ClientIP) {
		slog.Warn("login throttled", "client_ip", req.ClientIP)
		return auth.TokenResponse{}, auth.ErrTooManyAttempts
	}

	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	found, err := a.WorkerRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			a.throttle.Fail(req.ClientIP)
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get worker by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		a.throttle.Fail(req.ClientIP)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(found.ID, found.Email, found.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            "Bearer",
		ForcePasswordChange:  found.ForcePasswordChange,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, actor worker.Actor) (worker.WorkerResponse, error) {
	found, err := a.WorkerRepository.GetByID(ctx, actor.WorkerID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(found), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, actor worker.Actor, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	found, err := a.WorkerRepository.GetByID(ctx, actor.WorkerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	found.ForcePasswordChange = false
	return a.setPassword(ctx, found, req.NewPassword)
}

// AdminResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) AdminResetPassword(ctx context.Context, workerID string) error {
	found, err := a.WorkerRepository.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	found.ForcePasswordChange = true
	if err := a.setPassword(ctx, found, auth.TemporaryPassword); err != nil {
		return err
	}
	slog.Info("password reset by admin", "worker_id", workerID)
	return nil
}

func (a *AuthServiceImpl) setPassword(ctx context.Context, w worker.Worker, password string) error {
	hash, err := a.hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	w.PasswordHash = hash
	w.UpdatedAt = a.now().UTC()
	return a.WorkerRepository.Update(ctx, w)
}
