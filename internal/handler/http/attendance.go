package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListByWorker(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Submit records an entry/exit pair. worker_id defaults to the caller.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.WorkerID == "" {
		req.WorkerID = actor.WorkerID
	}

	resp, err := h.attendanceService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if resp.Action == attendance.ActionCreated {
		response.Created(w, "Attendance recorded", resp)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", resp)
}

func (h *attendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	h.list(w, r, actor.WorkerID)
}

func (h *attendanceHandlerImpl) ListByWorker(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, chi.URLParam(r, "id"))
}

func (h *attendanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, workerID string) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.attendanceService.ListByWorker(r.Context(), actor, workerID, monthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.ListAll(r.Context(), monthFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func monthFilter(r *http.Request) attendance.ListFilter {
	var filter attendance.ListFilter
	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
	}
	return filter
}
