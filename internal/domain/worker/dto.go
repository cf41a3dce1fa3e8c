package worker

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type WorkerResponse struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	FullName            string `json:"full_name"`
	NationalID          string `json:"national_id"`
	AffiliationNumber   string `json:"affiliation_number,omitempty"`
	Role                string `json:"role"`
	MainSignature       string `json:"main_signature,omitempty"`
	CompanyProfileID    string `json:"company_profile_id,omitempty"`
	ForcePasswordChange bool   `json:"force_password_change"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// ToResponse strips the password hash.
func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:                  w.ID,
		Email:               w.Email,
		FirstName:           w.FirstName,
		LastName:            w.LastName,
		FullName:            w.FullName(),
		NationalID:          w.NationalID,
		AffiliationNumber:   w.AffiliationNumber,
		Role:                string(w.Role),
		MainSignature:       w.MainSignature,
		CompanyProfileID:    w.CompanyProfileID,
		ForcePasswordChange: w.ForcePasswordChange,
		CreatedAt:           w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           w.UpdatedAt.Format(time.RFC3339),
	}
}

type UpdateProfileRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	NationalID        string `json:"national_id"`
	AffiliationNumber string `json:"affiliation_number"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if validator.IsEmpty(r.NationalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "national_id",
			Message: "national_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdminUpdateRequest struct {
	ID                string  `json:"-"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	NationalID        string  `json:"national_id"`
	AffiliationNumber string  `json:"affiliation_number"`
	Role              string  `json:"role"`
	CompanyProfileID  *string `json:"company_profile_id"`
}

func (r *AdminUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetMainSignatureRequest struct {
	Signature string `json:"signature"`
}

func (r *SetMainSignatureRequest) Validate() error {
	if validator.IsEmpty(r.Signature) {
		return validator.ValidationErrors{{
			Field:   "signature",
			Message: "signature is required",
		}}
	}
	return nil
}
