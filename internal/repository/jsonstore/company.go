package jsonstore

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
)

type companyRepositoryImpl struct {
	store *Store
}

func NewCompanyRepository(store *Store) company.CompanyRepository {
	return &companyRepositoryImpl{store: store}
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	return load[company.Company](r.store, companiesFile)
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	items, err := load[company.Company](r.store, companiesFile)
	if err != nil {
		return company.Company{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

// Save implements company.CompanyRepository.
func (r *companyRepositoryImpl) Save(ctx context.Context, c company.Company) error {
	return mutate(r.store, companiesFile, func(items []company.Company) ([]company.Company, error) {
		for i := range items {
			if items[i].ID == c.ID {
				items[i] = c
				return items, nil
			}
		}
		return append(items, c), nil
	})
}

// Prepend implements company.CompanyRepository.
func (r *companyRepositoryImpl) Prepend(ctx context.Context, c company.Company) error {
	return mutate(r.store, companiesFile, func(items []company.Company) ([]company.Company, error) {
		return append([]company.Company{c}, items...), nil
	})
}

// Delete implements company.CompanyRepository.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	return mutate(r.store, companiesFile, func(items []company.Company) ([]company.Company, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, company.ErrCompanyNotFound
	})
}
