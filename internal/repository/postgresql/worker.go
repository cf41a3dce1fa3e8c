package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const workerColumns = `id, email, password_hash, first_name, last_name, national_id,
	affiliation_number, role, main_signature, company_profile_id, force_password_change,
	created_at, updated_at`

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := q.Exec(ctx, query,
		w.ID, w.Email, w.PasswordHash, w.FirstName, w.LastName, w.NationalID,
		w.AffiliationNumber, w.Role, w.MainSignature, w.CompanyProfileID, w.ForcePasswordChange,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation {
			switch constraint {
			case workersNationalIDIndex:
				return worker.Worker{}, worker.ErrNationalIDExists
			default:
				return worker.Worker{}, worker.ErrEmailExists
			}
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return r.getOne(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	return r.getOne(ctx, `SELECT `+workerColumns+` FROM workers WHERE lower(email) = lower($1)`, email)
}

// ExistsByNationalID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM workers WHERE national_id <> '' AND upper(national_id) = upper($1))`,
		nationalID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check national id: %w", err)
	}
	return exists, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context) ([]worker.Worker, error) {
	return r.query(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY created_at, id`)
}

// ListByRole implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListByRole(ctx context.Context, role worker.Role) ([]worker.Worker, error) {
	return r.query(ctx, `SELECT `+workerColumns+` FROM workers WHERE role = $1 ORDER BY created_at, id`, role)
}

// Count implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM workers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count workers: %w", err)
	}
	return n, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET
			email = $2, password_hash = $3, first_name = $4, last_name = $5,
			national_id = $6, affiliation_number = $7, role = $8,
			main_signature = $9, company_profile_id = $10,
			force_password_change = $11, updated_at = $12
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		w.ID, w.Email, w.PasswordHash, w.FirstName, w.LastName,
		w.NationalID, w.AffiliationNumber, w.Role,
		w.MainSignature, w.CompanyProfileID, w.ForcePasswordChange, w.UpdatedAt,
	)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == workersNationalIDIndex {
			return worker.ErrNationalIDExists
		}
		return fmt.Errorf("failed to update worker with id %s: %w", w.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

func (r *workerRepositoryImpl) getOne(ctx context.Context, sql string, arg interface{}) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

func (r *workerRepositoryImpl) query(ctx context.Context, sql string, args ...interface{}) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	workers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (worker.Worker, error) {
		return scanWorker(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan workers: %w", err)
	}
	return workers, nil
}

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Email, &w.PasswordHash, &w.FirstName, &w.LastName, &w.NationalID,
		&w.AffiliationNumber, &w.Role, &w.MainSignature, &w.CompanyProfileID, &w.ForcePasswordChange,
		&w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}
