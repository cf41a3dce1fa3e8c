package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	workersEmailIndex      = "workers_email_key"
	workersNationalIDIndex = "workers_national_id_key"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id                 TEXT PRIMARY KEY,
		email              TEXT NOT NULL,
		password_hash      TEXT NOT NULL,
		first_name         TEXT NOT NULL DEFAULT '',
		last_name          TEXT NOT NULL DEFAULT '',
		national_id        TEXT NOT NULL DEFAULT '',
		affiliation_number TEXT NOT NULL DEFAULT '',
		role               TEXT NOT NULL CHECK (role IN ('employee', 'admin')),
		main_signature     TEXT NOT NULL DEFAULT '',
		company_profile_id TEXT NOT NULL DEFAULT '',
		force_password_change BOOLEAN NOT NULL DEFAULT FALSE,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE workers ADD COLUMN IF NOT EXISTS force_password_change BOOLEAN NOT NULL DEFAULT FALSE`,
	`CREATE UNIQUE INDEX IF NOT EXISTS workers_email_key ON workers (lower(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS workers_national_id_key ON workers (upper(national_id)) WHERE national_id <> ''`,

	`CREATE TABLE IF NOT EXISTS companies (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		tax_id            TEXT NOT NULL,
		address           TEXT NOT NULL DEFAULT '',
		registration_code TEXT NOT NULL DEFAULT '',
		seal_image        TEXT NOT NULL DEFAULT '',
		is_default        BOOLEAN NOT NULL DEFAULT FALSE,
		sort_order        BIGINT NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		seq             BIGSERIAL,
		worker_id       TEXT NOT NULL,
		worker_name     TEXT NOT NULL DEFAULT '',
		date            TEXT NOT NULL CHECK (date ~ '^\d{4}-\d{2}-\d{2}$'),
		shift           SMALLINT NOT NULL CHECK (shift IN (1, 2)),
		entry_time      TEXT NOT NULL,
		exit_time       TEXT NOT NULL DEFAULT '',
		entry_signature TEXT NOT NULL DEFAULT '',
		exit_signature  TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (worker_id, date, shift)
	)`,
	`CREATE INDEX IF NOT EXISTS attendance_records_date_idx ON attendance_records (date)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}

// pgErrorCode returns the SQLSTATE and constraint of a Postgres error.
func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
