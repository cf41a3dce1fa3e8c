package report

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
)

// Renderer turns an assembled grid into a binary document. Images maps each
// signature reference of the grid to its decoded bytes; a missing entry
// leaves the slot empty.
type Renderer interface {
	Render(grid ReportGrid, images map[string]Image) ([]byte, error)
	ContentType() string
	Extension() string
}

// Image is a loaded signature or seal.
type Image struct {
	Data      []byte
	Extension string // ".png", ".jpg"
}

type ReportService interface {
	// MonthlyReport assembles a worker's grid for one month
	MonthlyReport(ctx context.Context, actor worker.Actor, req MonthlyReportRequest) (ReportGrid, error)

	// ExportMonthlyReport renders the grid as a document
	ExportMonthlyReport(ctx context.Context, actor worker.Actor, req MonthlyReportRequest) (Document, error)

	// ReportMonths lists the months that have records for a worker
	ReportMonths(ctx context.Context, actor worker.Actor, workerID string) (ReportMonthsResponse, error)

	// ExportAllMonths bundles one rendered document per month into a zip
	ExportAllMonths(ctx context.Context, actor worker.Actor, workerID string) (Document, error)
}
