package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	return store
}

func testRecord(workerID, date string, shift int, entry string) attendance.Record {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	return attendance.Record{
		WorkerID:   workerID,
		WorkerName: "Test Worker",
		Date:       date,
		Shift:      shift,
		EntryTime:  entry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ===== ATTENDANCE =====

func TestAttendanceRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(openTestStore(t))

	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 2, "13:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w2", "2024-03-15", 1, "07:00")))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	day, err := repo.ListByWorkerAndDate(ctx, "w2", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "07:00", day[0].EntryTime)
}

func TestAttendanceRepository_SaveOverwritesSameSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(openTestStore(t))

	rec := testRecord("w1", "2024-03-15", 1, "08:00")
	require.NoError(t, repo.Save(ctx, rec))

	rec.EntryTime = "08:15"
	rec.ExitTime = "12:00"
	require.NoError(t, repo.Save(ctx, rec))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "08:15", all[0].EntryTime)
	assert.Equal(t, "12:00", all[0].ExitTime)
}

func TestAttendanceRepository_SaveEnforcesShiftCap(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(openTestStore(t))

	assert.ErrorIs(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 3, "20:00")), attendance.ErrShiftCapExceeded)
	assert.ErrorIs(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 0, "20:00")), attendance.ErrShiftCapExceeded)

	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 2, "13:00")))

	// the same slot on a full day is overwritten, never added
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 2, "20:00")))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAttendanceRepository_ListOpenBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(openTestStore(t))

	closed := testRecord("w1", "2024-03-13", 1, "08:00")
	closed.ExitTime = "12:00"
	require.NoError(t, repo.Save(ctx, closed))
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-14", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 1, "08:00")))

	open, err := repo.ListOpenBefore(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "2024-03-14", open[0].Date)
}

func TestAttendanceRepository_DeleteByWorker(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(openTestStore(t))

	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-14", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w1", "2024-03-15", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, testRecord("w2", "2024-03-15", 1, "08:00")))

	n, err := repo.DeleteByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "w2", all[0].WorkerID)
}

func TestAttendanceRepository_DocumentFormat(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	repo := NewAttendanceRepository(store)

	rec := testRecord("w1", "2024-03-15", 1, "08:00")
	rec.ExitSignature = "sig.png"
	require.NoError(t, repo.Save(ctx, rec))

	data, err := os.ReadFile(filepath.Join(store.Dir(), attendanceFile))
	require.NoError(t, err)

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "w1", doc[0]["workerId"])
	assert.Equal(t, "2024-03-15", doc[0]["date"])
	assert.Equal(t, float64(1), doc[0]["shift"])
	assert.Equal(t, "08:00", doc[0]["entryTime"])
	assert.Equal(t, "sig.png", doc[0]["exitSignature"])
	assert.NotContains(t, doc[0], "exitTime")
}

func TestAttendanceRepository_EmptyFileIsEmptyCollection(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), attendanceFile), nil, 0644))

	all, err := NewAttendanceRepository(store).ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ===== WORKERS =====

func TestWorkerRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkerRepository(openTestStore(t))

	w := worker.Worker{ID: "w1", Email: "ana@example.com", FirstName: "Ana", NationalID: "123A", Role: worker.RoleAdmin}
	_, err := repo.Create(ctx, w)
	require.NoError(t, err)

	_, err = repo.Create(ctx, worker.Worker{ID: "w2", Email: "ANA@example.com", NationalID: "999"})
	assert.ErrorIs(t, err, worker.ErrEmailExists)

	_, err = repo.Create(ctx, worker.Worker{ID: "w3", Email: "bob@example.com", NationalID: "123a"})
	assert.ErrorIs(t, err, worker.ErrNationalIDExists)

	got, err := repo.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "w1", got.ID)

	exists, err := repo.ExistsByNationalID(ctx, "123a")
	require.NoError(t, err)
	assert.True(t, exists)

	w.LastName = "Ruiz"
	require.NoError(t, repo.Update(ctx, w))
	got, err = repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Ruiz", got.LastName)

	admins, err := repo.ListByRole(ctx, worker.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, "w1"))
	assert.ErrorIs(t, repo.Delete(ctx, "w1"), worker.ErrWorkerNotFound)
	_, err = repo.GetByID(ctx, "w1")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	assert.ErrorIs(t, repo.Update(ctx, w), worker.ErrWorkerNotFound)
}

// ===== COMPANIES =====

func TestCompanyRepository_SavePrependDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepository(openTestStore(t))

	require.NoError(t, repo.Save(ctx, company.Company{ID: "c1", Name: "One", TaxID: "1"}))
	require.NoError(t, repo.Save(ctx, company.Company{ID: "c2", Name: "Two", TaxID: "2"}))
	require.NoError(t, repo.Save(ctx, company.Company{ID: "c1", Name: "One bis", TaxID: "1"}))
	require.NoError(t, repo.Prepend(ctx, company.DefaultProfile()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, company.DefaultCompanyID, list[0].ID)
	assert.Equal(t, "One bis", list[1].Name)

	require.NoError(t, repo.Delete(ctx, "c2"))
	assert.ErrorIs(t, repo.Delete(ctx, "c2"), company.ErrCompanyNotFound)

	_, err = repo.GetByID(ctx, "c2")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

// ===== TRANSACTIONS =====

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	workers := NewWorkerRepository(store)
	records := NewAttendanceRepository(store)

	_, err := workers.Create(ctx, worker.Worker{ID: "w1", Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, records.Save(ctx, testRecord("w1", "2024-03-15", 1, "08:00")))

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := records.DeleteByWorker(ctx, "w1"); err != nil {
			return err
		}
		if err := workers.Delete(ctx, "w1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = workers.GetByID(ctx, "w1")
	assert.NoError(t, err)
	all, err := records.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// companies.json never existed and must not appear after the rollback
	_, err = os.Stat(filepath.Join(store.Dir(), companiesFile))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, openTestStore(t).Ping(context.Background()))
}
