package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrWrongPassword):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, err.Error())

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, worker.ErrNationalIDExists):
		Conflict(w, "National ID already registered")
	case errors.Is(err, worker.ErrAdminExists):
		Conflict(w, err.Error())
	case errors.Is(err, worker.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, worker.ErrAdminPrivilegeRequired),
		errors.Is(err, worker.ErrForbidden):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrForbiddenWorker):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrShiftCapExceeded):
		Conflict(w, err.Error())

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrDefaultCompanyProtected):
		Forbidden(w, err.Error())

	// Reports and signatures
	case errors.Is(err, report.ErrNoRecords):
		NotFound(w, err.Error())
	case errors.Is(err, file.ErrInvalidImage):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrSignatureNotFound):
		NotFound(w, "Signature not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
