package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/google/uuid"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	now func() time.Time
}

func NewCompanyService(companyRepository company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		now:               time.Now,
	}
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	profiles, err := c.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	resp := make([]company.CompanyResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, company.ToResponse(p))
	}
	return resp, nil
}

// Save implements company.CompanyService. It returns the full list after
// the write. An empty seal keeps the stored one.
func (c *CompanyServiceImpl) Save(ctx context.Context, req company.SaveCompanyRequest) ([]company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile := company.Company{
		ID:               strings.TrimSpace(req.ID),
		Name:             strings.TrimSpace(req.Name),
		TaxID:            strings.ToUpper(strings.TrimSpace(req.TaxID)),
		Address:          strings.TrimSpace(req.Address),
		RegistrationCode: strings.TrimSpace(req.RegistrationCode),
		SealImage:        strings.TrimSpace(req.SealImage),
		CreatedAt:        c.now().UTC(),
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	} else {
		existing, err := c.CompanyRepository.GetByID(ctx, profile.ID)
		switch {
		case err == nil:
			profile.CreatedAt = existing.CreatedAt
			profile.IsDefault = existing.IsDefault
			if profile.SealImage == "" {
				profile.SealImage = existing.SealImage
			}
		case errors.Is(err, company.ErrCompanyNotFound):
		default:
			return nil, fmt.Errorf("failed to get company with id %s: %w", profile.ID, err)
		}
	}

	if err := c.CompanyRepository.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	slog.Info("company profile saved", "company_id", profile.ID)
	return c.List(ctx)
}

// Delete implements company.CompanyService.
func (c *CompanyServiceImpl) Delete(ctx context.Context, id string) error {
	if id == company.DefaultCompanyID {
		return company.ErrDefaultCompanyProtected
	}
	return c.CompanyRepository.Delete(ctx, id)
}

// EnsureDefault implements company.CompanyService.
func (c *CompanyServiceImpl) EnsureDefault(ctx context.Context) (bool, error) {
	profiles, err := c.CompanyRepository.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list companies: %w", err)
	}

	for _, p := range profiles {
		if p.IsDefault {
			return false, nil
		}
	}

	for _, p := range profiles {
		if p.ID == company.DefaultCompanyID {
			p.IsDefault = true
			if err := c.CompanyRepository.Save(ctx, p); err != nil {
				return false, fmt.Errorf("failed to flag default company: %w", err)
			}
			return true, nil
		}
	}

	def := company.DefaultProfile()
	def.CreatedAt = c.now().UTC()
	if err := c.CompanyRepository.Prepend(ctx, def); err != nil {
		return false, fmt.Errorf("failed to insert default company: %w", err)
	}

	slog.Info("default company profile created")
	return true, nil
}
