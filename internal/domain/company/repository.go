package company

import "context"

type CompanyRepository interface {
	// List returns profiles in storage order; the default profile comes first
	List(ctx context.Context) ([]Company, error)

	// GetByID returns ErrCompanyNotFound when absent
	GetByID(ctx context.Context, id string) (Company, error)

	// Save inserts or overwrites the profile with the same ID
	Save(ctx context.Context, c Company) error

	// Prepend inserts a profile ahead of all others
	Prepend(ctx context.Context, c Company) error

	// Delete returns ErrCompanyNotFound when nothing was removed
	Delete(ctx context.Context, id string) error
}
