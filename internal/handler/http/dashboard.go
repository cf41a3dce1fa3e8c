package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	Mine(w http.ResponseWriter, r *http.Request)
	Worker(w http.ResponseWriter, r *http.Request)
	Admin(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

func (h *dashboardHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	h.workerStats(w, r, actor.WorkerID)
}

func (h *dashboardHandlerImpl) Worker(w http.ResponseWriter, r *http.Request) {
	h.workerStats(w, r, chi.URLParam(r, "id"))
}

func (h *dashboardHandlerImpl) workerStats(w http.ResponseWriter, r *http.Request, workerID string) {
	actor, _ := middleware.ActorFromContext(r.Context())

	ref, err := h.referenceDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.dashboardService.WorkerStats(r.Context(), actor, workerID, ref)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *dashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	ref, err := h.referenceDate(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.dashboardService.AdminStats(r.Context(), ref)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// referenceDate reads ?date=YYYY-MM-DD, defaulting to today.
func (h *dashboardHandlerImpl) referenceDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.now(), nil
	}
	ref, ok := validator.IsValidDate(raw)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return ref, nil
}
