package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
)

type DashboardService interface {
	// WorkerStats computes a worker's dashboard (self or admin)
	WorkerStats(ctx context.Context, actor worker.Actor, workerID string, ref time.Time) (WorkerStatsResponse, error)

	// AdminStats computes the system-wide dashboard
	AdminStats(ctx context.Context, ref time.Time) (AdminStatsResponse, error)
}
