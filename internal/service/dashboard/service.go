package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
}

// WorkerStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) WorkerStats(ctx context.Context, actor worker.Actor, workerID string, ref time.Time) (dashboard.WorkerStatsResponse, error) {
	if !actor.CanActFor(workerID) {
		return dashboard.WorkerStatsResponse{}, worker.ErrForbidden
	}

	if _, err := s.workerRepo.GetByID(ctx, workerID); err != nil {
		return dashboard.WorkerStatsResponse{}, err
	}

	records, err := s.attendanceRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return dashboard.WorkerStatsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return dashboard.WorkerStatsResponse{
		WorkerID:      workerID,
		ReferenceDate: ref.Format(dateLayout),
		Stats:         ComputeStats(records, workerID, ref),
	}, nil
}

// AdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminStats(ctx context.Context, ref time.Time) (dashboard.AdminStatsResponse, error) {
	var (
		records     []attendance.Record
		workerCount int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		workerCount, err = s.workerRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count workers: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminStatsResponse{}, err
	}

	return dashboard.AdminStatsResponse{
		ReferenceDate: ref.Format(dateLayout),
		Stats:         ComputeAdminStats(records, workerCount, ref),
	}, nil
}

func NewDashboardService(attendanceRepo attendance.AttendanceRepository, workerRepo worker.WorkerRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
	}
}
