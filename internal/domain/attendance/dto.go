package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// SUBMISSION
// ========================================

// Validate checks required fields and the date/time formats.
func (s Submission) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if validator.IsEmpty(s.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(s.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(s.EntryTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_time",
			Message: "entry_time is required",
		})
	} else if !validator.IsValidClockTime(s.EntryTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_time",
			Message: "entry_time must be in HH:MM format",
		})
	}

	if s.ExitTime != "" && !validator.IsValidClockTime(s.ExitTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "exit_time",
			Message: "exit_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitRequest struct {
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name"`
	Date           string  `json:"date"`
	EntryTime      string  `json:"entry_time"`
	ExitTime       string  `json:"exit_time"`
	EntrySignature *string `json:"entry_signature"`
	ExitSignature  *string `json:"exit_signature"`
}

// Submission converts the request into the reconciler's input.
func (r *SubmitRequest) Submission() Submission {
	return Submission{
		WorkerID:       r.WorkerID,
		WorkerName:     r.WorkerName,
		Date:           r.Date,
		EntryTime:      r.EntryTime,
		ExitTime:       r.ExitTime,
		EntrySignature: r.EntrySignature,
		ExitSignature:  r.ExitSignature,
	}
}

func (r *SubmitRequest) Validate() error {
	return r.Submission().Validate()
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name"`
	Date           string  `json:"date"`
	Shift          int     `json:"shift"`
	EntryTime      string  `json:"entry_time"`
	ExitTime       *string `json:"exit_time,omitempty"`
	EntrySignature *string `json:"entry_signature,omitempty"`
	ExitSignature  *string `json:"exit_signature,omitempty"`
	WorkedHours    float64 `json:"worked_hours"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func ToRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		WorkerID:    r.WorkerID,
		WorkerName:  r.WorkerName,
		Date:        r.Date,
		Shift:       r.Shift,
		EntryTime:   r.EntryTime,
		WorkedHours: clock.Round(clock.Hours(r.EntryTime, r.ExitTime), 2),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ExitTime != "" {
		resp.ExitTime = &r.ExitTime
	}
	if r.EntrySignature != "" {
		resp.EntrySignature = &r.EntrySignature
	}
	if r.ExitSignature != "" {
		resp.ExitSignature = &r.ExitSignature
	}
	return resp
}

type SubmitResponse struct {
	Action Action         `json:"action"`
	Record RecordResponse `json:"record"`
}

type ListRecordsResponse struct {
	TotalCount int              `json:"total_count"`
	Records    []RecordResponse `json:"records"`
}

// ========================================
// FILTERS
// ========================================

type ListFilter struct {
	Month *string `json:"month,omitempty"` // YYYY-MM
}

func (f *ListFilter) Validate() error {
	if f.Month != nil && *f.Month != "" {
		if _, valid := validator.IsValidMonth(*f.Month); !valid {
			return validator.ValidationErrors{{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			}}
		}
	}
	return nil
}
