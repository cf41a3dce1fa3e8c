package report

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"golang.org/x/sync/errgroup"
)

// ImageLoader resolves signature references to image bytes.
type ImageLoader interface {
	LoadSignature(ctx context.Context, ref string) (report.Image, error)
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	companyRepo    company.CompanyRepository
	renderer       report.Renderer
	images         ImageLoader
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, actor worker.Actor, req report.MonthlyReportRequest) (report.ReportGrid, error) {
	if err := req.Validate(); err != nil {
		return report.ReportGrid{}, err
	}
	if !actor.CanActFor(req.WorkerID) {
		return report.ReportGrid{}, worker.ErrForbidden
	}

	w, records, err := s.load(ctx, req.WorkerID)
	if err != nil {
		return report.ReportGrid{}, err
	}

	period, _ := time.Parse("2006-01", req.Month)
	return AssembleReport(w, s.profileOf(ctx, w), records, period), nil
}

// ExportMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, actor worker.Actor, req report.MonthlyReportRequest) (report.Document, error) {
	grid, err := s.MonthlyReport(ctx, actor, req)
	if err != nil {
		return report.Document{}, err
	}

	content, err := s.render(ctx, grid)
	if err != nil {
		return report.Document{}, err
	}

	return report.Document{
		Filename:    documentName(grid, s.renderer.Extension()),
		ContentType: s.renderer.ContentType(),
		Content:     content,
	}, nil
}

// ReportMonths implements report.ReportService.
func (s *ReportServiceImpl) ReportMonths(ctx context.Context, actor worker.Actor, workerID string) (report.ReportMonthsResponse, error) {
	if !actor.CanActFor(workerID) {
		return report.ReportMonthsResponse{}, worker.ErrForbidden
	}

	_, records, err := s.load(ctx, workerID)
	if err != nil {
		return report.ReportMonthsResponse{}, err
	}

	return report.ReportMonthsResponse{
		WorkerID: workerID,
		Months:   monthsOf(records),
	}, nil
}

// ExportAllMonths implements report.ReportService.
func (s *ReportServiceImpl) ExportAllMonths(ctx context.Context, actor worker.Actor, workerID string) (report.Document, error) {
	if !actor.CanActFor(workerID) {
		return report.Document{}, worker.ErrForbidden
	}

	w, records, err := s.load(ctx, workerID)
	if err != nil {
		return report.Document{}, err
	}

	months := monthsOf(records)
	if len(months) == 0 {
		return report.Document{}, report.ErrNoRecords
	}

	profile := s.profileOf(ctx, w)

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, month := range months {
		period, err := time.Parse("2006-01", month)
		if err != nil {
			slog.Warn("Skipping unparseable report month", "worker_id", workerID, "month", month)
			continue
		}

		grid := AssembleReport(w, profile, records, period)
		content, err := s.render(ctx, grid)
		if err != nil {
			return report.Document{}, err
		}

		entry, err := zw.Create(documentName(grid, s.renderer.Extension()))
		if err != nil {
			return report.Document{}, fmt.Errorf("failed to add %s to archive: %w", month, err)
		}
		if _, err := entry.Write(content); err != nil {
			return report.Document{}, fmt.Errorf("failed to add %s to archive: %w", month, err)
		}
	}
	if err := zw.Close(); err != nil {
		return report.Document{}, fmt.Errorf("failed to finish archive: %w", err)
	}

	slog.Info("Exported all monthly reports", "worker_id", workerID, "months", len(months))

	return report.Document{
		Filename:    fmt.Sprintf("registro_%s.zip", fileSafe(w.FullName())),
		ContentType: "application/zip",
		Content:     buf.Bytes(),
	}, nil
}

// load fetches the worker and their records concurrently.
func (s *ReportServiceImpl) load(ctx context.Context, workerID string) (worker.Worker, []attendance.Record, error) {
	var (
		w       worker.Worker
		records []attendance.Record
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		w, err = s.workerRepo.GetByID(gctx, workerID)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByWorker(gctx, workerID)
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return worker.Worker{}, nil, err
	}
	return w, records, nil
}

// profileOf returns the worker's company profile, or nil when unset or
// missing so the report falls back to the default employer.
func (s *ReportServiceImpl) profileOf(ctx context.Context, w worker.Worker) *company.Company {
	if w.CompanyProfileID == "" {
		return nil
	}

	c, err := s.companyRepo.GetByID(ctx, w.CompanyProfileID)
	if err != nil {
		if !errors.Is(err, company.ErrCompanyNotFound) {
			slog.Warn("Failed to load company profile for report", "worker_id", w.ID, "company_id", w.CompanyProfileID, "error", err)
		}
		return nil
	}
	return &c
}

// render loads every referenced image and hands the grid to the renderer.
// Images that cannot be loaded leave their slot empty.
func (s *ReportServiceImpl) render(ctx context.Context, grid report.ReportGrid) ([]byte, error) {
	images := make(map[string]report.Image)
	for _, ref := range grid.SignatureRefs() {
		img, err := s.images.LoadSignature(ctx, ref)
		if err != nil {
			slog.Debug("Signature image unavailable", "ref", ref, "error", err)
			continue
		}
		images[ref] = img
	}

	content, err := s.renderer.Render(grid, images)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return content, nil
}

// monthsOf lists distinct "YYYY-MM" prefixes, newest first.
func monthsOf(records []attendance.Record) []string {
	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, r := range records {
		if len(r.Date) < 7 {
			continue
		}
		m := r.Date[:7]
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

func documentName(grid report.ReportGrid, ext string) string {
	return fmt.Sprintf("registro_%s_%04d-%02d%s", fileSafe(grid.Header.WorkerName), grid.Header.Year, grid.Header.Month, ext)
}

// fileSafe keeps letters and digits and turns everything else into "_".
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "worker"
	}
	return b.String()
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	companyRepo company.CompanyRepository,
	renderer report.Renderer,
	images ImageLoader,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		companyRepo:    companyRepo,
		renderer:       renderer,
		images:         images,
	}
}
