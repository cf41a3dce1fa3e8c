package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `worker_id, worker_name, date, shift, entry_time, exit_time,
	entry_signature, exit_signature, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Record, error) {
	return a.query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records ORDER BY seq`)
}

// ListByWorker implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorker(ctx context.Context, workerID string) ([]attendance.Record, error) {
	return a.query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE worker_id = $1 ORDER BY seq`, workerID)
}

// ListByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorkerAndDate(ctx context.Context, workerID string, date string) ([]attendance.Record, error) {
	return a.query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE worker_id = $1 AND date = $2
		ORDER BY shift
	`, workerID, date)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Record, error) {
	return a.query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE date < $1 AND exit_time = ''
		ORDER BY date, worker_id, shift
	`, date)
}

// Save implements attendance.AttendanceRepository.
func (a *attendanceRepository) Save(ctx context.Context, r attendance.Record) error {
	if r.Shift < attendance.ShiftMorning || r.Shift > attendance.MaxShiftsPerDay {
		return attendance.ErrShiftCapExceeded
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (worker_id, date, shift) DO UPDATE SET
			worker_name     = EXCLUDED.worker_name,
			entry_time      = EXCLUDED.entry_time,
			exit_time       = EXCLUDED.exit_time,
			entry_signature = EXCLUDED.entry_signature,
			exit_signature  = EXCLUDED.exit_signature,
			updated_at      = EXCLUDED.updated_at
	`

	_, err := q.Exec(ctx, query,
		r.WorkerID, r.WorkerName, r.Date, r.Shift, r.EntryTime, r.ExitTime,
		r.EntrySignature, r.ExitSignature, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgCheckViolation {
			return attendance.ErrShiftCapExceeded
		}
		return fmt.Errorf("failed to save attendance record: %w", err)
	}
	return nil
}

// DeleteByWorker implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByWorker(ctx context.Context, workerID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE worker_id = $1`, workerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records of worker %s: %w", workerID, err)
	}
	return tag.RowsAffected(), nil
}

func (a *attendanceRepository) query(ctx context.Context, sql string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Record, error) {
		var r attendance.Record
		err := row.Scan(
			&r.WorkerID, &r.WorkerName, &r.Date, &r.Shift, &r.EntryTime, &r.ExitTime,
			&r.EntrySignature, &r.ExitSignature, &r.CreatedAt, &r.UpdatedAt,
		)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}
	return records, nil
}
