package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, tax_id, address, registration_code, seal_image, is_default, created_at`

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY sort_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (company.Company, error) {
		return scanCompany(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}
	return companies, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	found, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}

// Save implements company.CompanyRepository. New profiles go last.
func (c *companyRepositoryImpl) Save(ctx context.Context, p company.Company) error {
	return c.upsert(ctx, p, `(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM companies)`)
}

// Prepend implements company.CompanyRepository.
func (c *companyRepositoryImpl) Prepend(ctx context.Context, p company.Company) error {
	return c.upsert(ctx, p, `(SELECT COALESCE(MIN(sort_order), 0) - 1 FROM companies)`)
}

func (c *companyRepositoryImpl) upsert(ctx context.Context, p company.Company, order string) error {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (` + companyColumns + `, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ` + order + `)
		ON CONFLICT (id) DO UPDATE SET
			name              = EXCLUDED.name,
			tax_id            = EXCLUDED.tax_id,
			address           = EXCLUDED.address,
			registration_code = EXCLUDED.registration_code,
			seal_image        = EXCLUDED.seal_image,
			is_default        = EXCLUDED.is_default
	`
	_, err := q.Exec(ctx, query,
		p.ID, p.Name, p.TaxID, p.Address, p.RegistrationCode, p.SealImage, p.IsDefault, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save company with id %s: %w", p.ID, err)
	}
	return nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var p company.Company
	err := row.Scan(&p.ID, &p.Name, &p.TaxID, &p.Address, &p.RegistrationCode, &p.SealImage, &p.IsDefault, &p.CreatedAt)
	return p, err
}
