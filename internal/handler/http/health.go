package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

// Pinger is any dependency that can report its own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status        string            `json:"status"`
	StorageDriver string            `json:"storage_driver"`
	Checks        map[string]string `json:"checks"`
}

type HealthHandler struct {
	driver string
	checks map[string]Pinger
}

func NewHealthHandler(driver string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{driver: driver, checks: checks}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := healthStatus{
		Status:        "ok",
		StorageDriver: h.driver,
		Checks:        make(map[string]string, len(h.checks)),
	}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Checks[name] = err.Error()
			continue
		}
		status.Checks[name] = "ok"
	}

	if status.Status != "ok" {
		response.ServiceUnavailable(w, "Storage unavailable", status)
		return
	}
	response.Success(w, status)
}
