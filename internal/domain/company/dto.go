package company

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type SaveCompanyRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TaxID            string `json:"tax_id"`
	Address          string `json:"address"`
	RegistrationCode string `json:"registration_code"`
	SealImage        string `json:"seal_image"`
}

func (r *SaveCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.TaxID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tax_id",
			Message: "tax_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompanyResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TaxID            string `json:"tax_id"`
	Address          string `json:"address,omitempty"`
	RegistrationCode string `json:"registration_code,omitempty"`
	SealImage        string `json:"seal_image,omitempty"`
	IsDefault        bool   `json:"is_default"`
	CreatedAt        string `json:"created_at"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		Address:          c.Address,
		RegistrationCode: c.RegistrationCode,
		SealImage:        c.SealImage,
		IsDefault:        c.IsDefault,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}
