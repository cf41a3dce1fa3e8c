package worker

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/jsonstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type workerFixture struct {
	service   worker.WorkerService
	workers   worker.WorkerRepository
	records   attendance.AttendanceRepository
	companies company.CompanyRepository
}

func newWorkerFixture(t *testing.T) workerFixture {
	t.Helper()
	store, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	f := workerFixture{
		workers:   jsonstore.NewWorkerRepository(store),
		records:   jsonstore.NewAttendanceRepository(store),
		companies: jsonstore.NewCompanyRepository(store),
	}
	f.service = NewWorkerService(f.workers, f.records, f.companies, store)
	return f
}

func (f workerFixture) seed(t *testing.T, id, nationalID string, role worker.Role) worker.Worker {
	t.Helper()
	w, err := f.workers.Create(context.Background(), worker.Worker{
		ID:         id,
		Email:      id + "@example.com",
		FirstName:  "Name",
		LastName:   id,
		NationalID: nationalID,
		Role:       role,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	})
	require.NoError(t, err)
	return w
}

func (f workerFixture) seedRecord(t *testing.T, workerID, date string) {
	t.Helper()
	require.NoError(t, f.records.Save(context.Background(), attendance.Record{
		WorkerID:  workerID,
		Date:      date,
		Shift:     attendance.ShiftMorning,
		EntryTime: "08:00",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}))
}

func TestGet_AccessRules(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.seed(t, "admin", "1A", worker.RoleAdmin)
	f.seed(t, "emp", "2B", worker.RoleEmployee)
	f.seed(t, "other", "3C", worker.RoleEmployee)

	got, err := f.service.Get(ctx, worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}, "emp")
	require.NoError(t, err)
	assert.Equal(t, "emp", got.ID)

	_, err = f.service.Get(ctx, worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}, "other")
	assert.ErrorIs(t, err, worker.ErrForbidden)

	got, err = f.service.Get(ctx, worker.Actor{WorkerID: "admin", Role: worker.RoleAdmin}, "other")
	require.NoError(t, err)
	assert.Equal(t, "other", got.ID)

	_, err = f.service.Get(ctx, worker.Actor{WorkerID: "admin", Role: worker.RoleAdmin}, "ghost")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestList(t *testing.T) {
	f := newWorkerFixture(t)
	f.seed(t, "a", "1A", worker.RoleAdmin)
	f.seed(t, "b", "2B", worker.RoleEmployee)

	list, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateProfile(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.seed(t, "emp", "2B", worker.RoleEmployee)
	f.seed(t, "other", "3C", worker.RoleEmployee)
	actor := worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}

	t.Run("updates identity", func(t *testing.T) {
		got, err := f.service.UpdateProfile(ctx, actor, worker.UpdateProfileRequest{
			FirstName:         " Lucía ",
			LastName:          "Pérez",
			NationalID:        "2b",
			AffiliationNumber: "28/1234567",
		})
		require.NoError(t, err)
		assert.Equal(t, "Lucía Pérez", got.FullName)
		assert.Equal(t, "2B", got.NationalID)
		assert.Equal(t, "28/1234567", got.AffiliationNumber)
	})

	t.Run("rejects taken national id", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, actor, worker.UpdateProfileRequest{
			FirstName:  "Lucía",
			LastName:   "Pérez",
			NationalID: "3c",
		})
		assert.ErrorIs(t, err, worker.ErrNationalIDExists)
	})

	t.Run("requires names", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, actor, worker.UpdateProfileRequest{NationalID: "2B"})
		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.True(t, verrs.Has("first_name"))
		assert.True(t, verrs.Has("last_name"))
	})
}

func TestAdminUpdate(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.seed(t, "emp", "2B", worker.RoleEmployee)
	require.NoError(t, f.companies.Save(ctx, company.Company{ID: "c1", Name: "Acme", TaxID: "B1", CreatedAt: testNow}))

	profile := "c1"
	got, err := f.service.AdminUpdate(ctx, worker.AdminUpdateRequest{
		ID:               "emp",
		FirstName:        "Luis",
		LastName:         "Martín",
		Role:             "admin",
		CompanyProfileID: &profile,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, "c1", got.CompanyProfileID)
	assert.Equal(t, "2B", got.NationalID)

	missing := "nope"
	_, err = f.service.AdminUpdate(ctx, worker.AdminUpdateRequest{
		ID:               "emp",
		FirstName:        "Luis",
		LastName:         "Martín",
		CompanyProfileID: &missing,
	})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	cleared := ""
	got, err = f.service.AdminUpdate(ctx, worker.AdminUpdateRequest{
		ID:               "emp",
		FirstName:        "Luis",
		LastName:         "Martín",
		CompanyProfileID: &cleared,
	})
	require.NoError(t, err)
	assert.Empty(t, got.CompanyProfileID)
}

func TestDelete(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.seed(t, "admin", "1A", worker.RoleAdmin)
	f.seed(t, "emp", "2B", worker.RoleEmployee)
	f.seedRecord(t, "emp", "2024-03-14")
	f.seedRecord(t, "emp", "2024-03-15")
	f.seedRecord(t, "admin", "2024-03-15")

	admin := worker.Actor{WorkerID: "admin", Role: worker.RoleAdmin}

	assert.ErrorIs(t, f.service.Delete(ctx, worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}, "admin"), worker.ErrAdminPrivilegeRequired)
	assert.ErrorIs(t, f.service.Delete(ctx, admin, "admin"), worker.ErrCannotDeleteSelf)

	require.NoError(t, f.service.Delete(ctx, admin, "emp"))

	_, err := f.workers.GetByID(ctx, "emp")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	remaining, err := f.records.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "admin", remaining[0].WorkerID)

	assert.ErrorIs(t, f.service.Delete(ctx, admin, "emp"), worker.ErrWorkerNotFound)
}

func TestSetMainSignature(t *testing.T) {
	f := newWorkerFixture(t)
	ctx := context.Background()
	f.seed(t, "emp", "2B", worker.RoleEmployee)
	actor := worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}

	got, err := f.service.SetMainSignature(ctx, actor, worker.SetMainSignatureRequest{Signature: "/signatures/emp_1.png"})
	require.NoError(t, err)
	assert.Equal(t, "/signatures/emp_1.png", got.MainSignature)

	_, err = f.service.SetMainSignature(ctx, actor, worker.SetMainSignatureRequest{})
	assert.Error(t, err)
}
