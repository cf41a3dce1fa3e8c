package company

import "context"

type CompanyService interface {
	List(ctx context.Context) ([]CompanyResponse, error)

	// Save creates the profile when the id is empty or unknown, else updates it
	Save(ctx context.Context, req SaveCompanyRequest) ([]CompanyResponse, error)

	Delete(ctx context.Context, id string) error

	// EnsureDefault inserts the default profile when none is flagged default
	EnsureDefault(ctx context.Context) (created bool, err error)
}
