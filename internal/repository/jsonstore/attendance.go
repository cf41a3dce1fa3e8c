package jsonstore

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListAll(ctx context.Context) ([]attendance.Record, error) {
	return load[attendance.Record](r.store, attendanceFile)
}

// ListByWorker implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByWorker(ctx context.Context, workerID string) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.WorkerID == workerID
	})
}

// ListByWorkerAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByWorkerAndDate(ctx context.Context, workerID string, date string) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.WorkerID == workerID && rec.Date == date
	})
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpenBefore(ctx context.Context, date string) ([]attendance.Record, error) {
	return r.filter(func(rec attendance.Record) bool {
		return rec.Date < date && rec.IsOpen()
	})
}

// Save implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Save(ctx context.Context, record attendance.Record) error {
	if record.Shift < attendance.ShiftMorning || record.Shift > attendance.MaxShiftsPerDay {
		return attendance.ErrShiftCapExceeded
	}

	return mutate(r.store, attendanceFile, func(items []attendance.Record) ([]attendance.Record, error) {
		sameDay := 0
		for i := range items {
			if items[i].SameSlot(record) {
				items[i] = record
				return items, nil
			}
			if items[i].WorkerID == record.WorkerID && items[i].Date == record.Date {
				sameDay++
			}
		}
		if sameDay >= attendance.MaxShiftsPerDay {
			return nil, attendance.ErrShiftCapExceeded
		}
		return append(items, record), nil
	})
}

// DeleteByWorker implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByWorker(ctx context.Context, workerID string) (int64, error) {
	var removed int64
	err := mutate(r.store, attendanceFile, func(items []attendance.Record) ([]attendance.Record, error) {
		kept := items[:0]
		for _, rec := range items {
			if rec.WorkerID == workerID {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *attendanceRepositoryImpl) filter(keep func(attendance.Record) bool) ([]attendance.Record, error) {
	items, err := load[attendance.Record](r.store, attendanceFile)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.Record, 0)
	for _, rec := range items {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
