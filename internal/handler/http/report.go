package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
	Months(w http.ResponseWriter, r *http.Request)
	ExportAll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func monthlyRequest(r *http.Request) report.MonthlyReportRequest {
	return report.MonthlyReportRequest{
		WorkerID: chi.URLParam(r, "id"),
		Month:    r.URL.Query().Get("month"),
	}
}

// Monthly returns the report grid as JSON.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	grid, err := h.reportService.MonthlyReport(r.Context(), actor, monthlyRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}

func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	doc, err := h.reportService.ExportMonthlyReport(r.Context(), actor, monthlyRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

func (h *reportHandlerImpl) Months(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	months, err := h.reportService.ReportMonths(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, months)
}

func (h *reportHandlerImpl) ExportAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	doc, err := h.reportService.ExportAllMonths(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}
