package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

type WorkerServiceImpl struct {
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	companyRepo    company.CompanyRepository
	tx             database.Transactor
	now            func() time.Time
}

func NewWorkerService(
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
	tx database.Transactor,
) worker.WorkerService {
	return &WorkerServiceImpl{
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
		tx:             tx,
		now:            time.Now,
	}
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	resp := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		resp = append(resp, worker.ToResponse(w))
	}
	return resp, nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, actor worker.Actor, id string) (worker.WorkerResponse, error) {
	if !actor.CanActFor(id) {
		return worker.WorkerResponse{}, worker.ErrForbidden
	}

	found, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(found), nil
}

// UpdateProfile implements worker.WorkerService.
func (s *WorkerServiceImpl) UpdateProfile(ctx context.Context, actor worker.Actor, req worker.UpdateProfileRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	found, err := s.workerRepo.GetByID(ctx, actor.WorkerID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := s.applyIdentity(ctx, &found, req.FirstName, req.LastName, req.NationalID, req.AffiliationNumber); err != nil {
		return worker.WorkerResponse{}, err
	}
	return s.save(ctx, found)
}

// AdminUpdate implements worker.WorkerService.
func (s *WorkerServiceImpl) AdminUpdate(ctx context.Context, req worker.AdminUpdateRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	found, err := s.workerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	nationalID := req.NationalID
	if strings.TrimSpace(nationalID) == "" {
		nationalID = found.NationalID
	}
	if err := s.applyIdentity(ctx, &found, req.FirstName, req.LastName, nationalID, req.AffiliationNumber); err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.Role != "" {
		found.Role = worker.Role(req.Role)
	}

	if req.CompanyProfileID != nil {
		profileID := strings.TrimSpace(*req.CompanyProfileID)
		if profileID != "" {
			if _, err := s.companyRepo.GetByID(ctx, profileID); err != nil {
				return worker.WorkerResponse{}, err
			}
		}
		found.CompanyProfileID = profileID
	}

	return s.save(ctx, found)
}

// Delete implements worker.WorkerService. The worker and their records go
// in one transaction.
func (s *WorkerServiceImpl) Delete(ctx context.Context, actor worker.Actor, id string) error {
	if !actor.IsAdmin() {
		return worker.ErrAdminPrivilegeRequired
	}
	if actor.WorkerID == id {
		return worker.ErrCannotDeleteSelf
	}

	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.workerRepo.Delete(ctx, id); err != nil {
			return err
		}

		n, err := s.attendanceRepo.DeleteByWorker(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete attendance records: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("worker deleted", "worker_id", id, "records_removed", removed, "by", actor.WorkerID)
	return nil
}

// SetMainSignature implements worker.WorkerService.
func (s *WorkerServiceImpl) SetMainSignature(ctx context.Context, actor worker.Actor, req worker.SetMainSignatureRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	found, err := s.workerRepo.GetByID(ctx, actor.WorkerID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	found.MainSignature = strings.TrimSpace(req.Signature)
	return s.save(ctx, found)
}

// applyIdentity sets the legal identity fields, rejecting a national id
// already held by someone else.
func (s *WorkerServiceImpl) applyIdentity(ctx context.Context, w *worker.Worker, firstName, lastName, nationalID, affiliation string) error {
	nationalID = strings.ToUpper(strings.TrimSpace(nationalID))

	if !strings.EqualFold(nationalID, w.NationalID) {
		exists, err := s.workerRepo.ExistsByNationalID(ctx, nationalID)
		if err != nil {
			return fmt.Errorf("failed to check national id: %w", err)
		}
		if exists {
			return worker.ErrNationalIDExists
		}
	}

	w.FirstName = strings.TrimSpace(firstName)
	w.LastName = strings.TrimSpace(lastName)
	w.NationalID = nationalID
	w.AffiliationNumber = strings.TrimSpace(affiliation)
	return nil
}

func (s *WorkerServiceImpl) save(ctx context.Context, w worker.Worker) (worker.WorkerResponse, error) {
	w.UpdatedAt = s.now().UTC()
	if err := s.workerRepo.Update(ctx, w); err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) || errors.Is(err, worker.ErrNationalIDExists) {
			return worker.WorkerResponse{}, err
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return worker.ToResponse(w), nil
}
