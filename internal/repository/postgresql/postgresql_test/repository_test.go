package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func newWorker(id, email, nationalID string, role worker.Role) worker.Worker {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	return worker.Worker{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     id,
		NationalID:   nationalID,
		Role:         role,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
}

func newRecord(workerID, date string, shift int, entry string) attendance.Record {
	return attendance.Record{
		WorkerID:   workerID,
		WorkerName: "Test " + workerID,
		Date:       date,
		Shift:      shift,
		EntryTime:  entry,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
}

func TestWorkerRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWorkerRepository(setup.DB)

	w := newWorker("w1", "ana@example.com", "123A", worker.RoleAdmin)
	_, err := repo.Create(ctx, w)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newWorker("w2", "ANA@example.com", "999", worker.RoleEmployee))
	assert.ErrorIs(t, err, worker.ErrEmailExists)

	_, err = repo.Create(ctx, newWorker("w3", "bob@example.com", "123a", worker.RoleEmployee))
	assert.ErrorIs(t, err, worker.ErrNationalIDExists)

	got, err := repo.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "w1", got.ID)
	assert.Equal(t, worker.RoleAdmin, got.Role)

	exists, err := repo.ExistsByNationalID(ctx, "123a")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.False(t, got.ForcePasswordChange)

	w.AffiliationNumber = "28/1"
	w.ForcePasswordChange = true
	require.NoError(t, repo.Update(ctx, w))
	got, err = repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "28/1", got.AffiliationNumber)
	assert.True(t, got.ForcePasswordChange)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, "w1"))
	assert.ErrorIs(t, repo.Delete(ctx, "w1"), worker.ErrWorkerNotFound)
	_, err = repo.GetByID(ctx, "w1")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	require.NoError(t, repo.Save(ctx, newRecord("w1", "2024-03-14", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, newRecord("w1", "2024-03-15", 2, "13:00")))
	require.NoError(t, repo.Save(ctx, newRecord("w1", "2024-03-15", 1, "08:00")))
	require.NoError(t, repo.Save(ctx, newRecord("w2", "2024-03-15", 1, "07:00")))

	assert.ErrorIs(t, repo.Save(ctx, newRecord("w1", "2024-03-15", 3, "20:00")), attendance.ErrShiftCapExceeded)

	// upsert keeps created_at
	upd := newRecord("w1", "2024-03-15", 1, "08:10")
	upd.ExitTime = "12:00"
	upd.CreatedAt = testNow.Add(time.Hour)
	upd.UpdatedAt = testNow.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, upd))

	day, err := repo.ListByWorkerAndDate(ctx, "w1", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, 1, day[0].Shift)
	assert.Equal(t, "08:10", day[0].EntryTime)
	assert.True(t, day[0].CreatedAt.Equal(testNow))
	assert.True(t, day[0].UpdatedAt.Equal(testNow.Add(time.Hour)))

	open, err := repo.ListOpenBefore(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "2024-03-14", open[0].Date)

	deleted, err := repo.DeleteByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCompanyRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewCompanyRepository(setup.DB)

	require.NoError(t, repo.Save(ctx, company.Company{ID: "c1", Name: "One", TaxID: "1", CreatedAt: testNow}))
	require.NoError(t, repo.Save(ctx, company.Company{ID: "c2", Name: "Two", TaxID: "2", CreatedAt: testNow}))
	def := company.DefaultProfile()
	def.CreatedAt = testNow
	require.NoError(t, repo.Prepend(ctx, def))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, company.DefaultCompanyID, list[0].ID)
	assert.Equal(t, "c1", list[1].ID)

	require.NoError(t, repo.Save(ctx, company.Company{ID: "c1", Name: "One bis", TaxID: "1", CreatedAt: testNow}))
	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "One bis", got.Name)

	require.NoError(t, repo.Delete(ctx, "c2"))
	assert.ErrorIs(t, repo.Delete(ctx, "c2"), company.ErrCompanyNotFound)
}

func TestTransactor_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	workers := postgresql.NewWorkerRepository(setup.DB)
	records := postgresql.NewAttendanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	_, err := workers.Create(ctx, newWorker("w1", "a@example.com", "1", worker.RoleEmployee))
	require.NoError(t, err)
	require.NoError(t, records.Save(ctx, newRecord("w1", "2024-03-15", 1, "08:00")))

	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
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
	all, err := records.ListByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
