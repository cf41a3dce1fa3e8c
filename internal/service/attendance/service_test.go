package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/jsonstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	recipients [][]string
	events     []sse.Event
}

func (p *capturePublisher) PublishToMany(ids []string, event sse.Event) {
	p.recipients = append(p.recipients, ids)
	p.events = append(p.events, event)
}

type serviceFixture struct {
	service   attendance.AttendanceService
	records   attendance.AttendanceRepository
	publisher *capturePublisher
}

var (
	admin    = worker.Actor{WorkerID: "boss", Role: worker.RoleAdmin}
	employee = worker.Actor{WorkerID: "emp", Role: worker.RoleEmployee}
)

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	ctx := context.Background()
	store, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	workers := jsonstore.NewWorkerRepository(store)
	_, err = workers.Create(ctx, worker.Worker{ID: "boss", Email: "boss@example.com", FirstName: "Bea", Role: worker.RoleAdmin})
	require.NoError(t, err)
	_, err = workers.Create(ctx, worker.Worker{ID: "emp", Email: "emp@example.com", FirstName: "Eva", LastName: "Ruiz", Role: worker.RoleEmployee})
	require.NoError(t, err)
	_, err = workers.Create(ctx, worker.Worker{ID: "other", Email: "other@example.com", FirstName: "Olga", Role: worker.RoleEmployee})
	require.NoError(t, err)

	records := jsonstore.NewAttendanceRepository(store)
	pub := &capturePublisher{}
	svc := NewAttendanceService(records, workers, pub)
	svc.(*AttendanceServiceImpl).now = func() time.Time {
		return time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	}
	return serviceFixture{service: svc, records: records, publisher: pub}
}

func submit(workerID, date, entry, exit string) attendance.SubmitRequest {
	return attendance.SubmitRequest{WorkerID: workerID, Date: date, EntryTime: entry, ExitTime: exit}
}

func TestSubmit_CreatesThenUpdatesSameShift(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	resp, err := f.service.Submit(ctx, employee, submit("emp", "2024-03-15", "08:00", ""))
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCreated, resp.Action)
	assert.Equal(t, 1, resp.Record.Shift)
	assert.Equal(t, "Eva Ruiz", resp.Record.WorkerName)
	assert.Nil(t, resp.Record.ExitTime)

	resp, err = f.service.Submit(ctx, employee, submit("emp", "2024-03-15", "08:30", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionUpdated, resp.Action)
	assert.Equal(t, 1, resp.Record.Shift)
	require.NotNil(t, resp.Record.ExitTime)
	assert.Equal(t, "14:00", *resp.Record.ExitTime)
	assert.Equal(t, 5.5, resp.Record.WorkedHours)

	day, err := f.records.ListByWorkerAndDate(ctx, "emp", "2024-03-15")
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestSubmit_SecondShift(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, employee, submit("emp", "2024-03-15", "08:00", "12:00"))
	require.NoError(t, err)

	resp, err := f.service.Submit(ctx, employee, submit("emp", "2024-03-15", "15:00", "19:00"))
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCreated, resp.Action)
	assert.Equal(t, 2, resp.Record.Shift)
}

func TestSubmit_Authorization(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, employee, submit("other", "2024-03-15", "08:00", ""))
	assert.ErrorIs(t, err, attendance.ErrForbiddenWorker)

	resp, err := f.service.Submit(ctx, admin, submit("other", "2024-03-15", "08:00", ""))
	require.NoError(t, err)
	assert.Equal(t, "other", resp.Record.WorkerID)

	_, err = f.service.Submit(ctx, admin, submit("ghost", "2024-03-15", "08:00", ""))
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestSubmit_Validation(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Submit(context.Background(), employee, submit("emp", "15/03/2024", "8am", "25:00"))
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "date")
	assert.Contains(t, m, "entry_time")
	assert.Contains(t, m, "exit_time")
}

func TestSubmit_NotifiesWorkerAndAdmins(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Submit(context.Background(), employee, submit("emp", "2024-03-15", "08:00", ""))
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventSavedName, f.publisher.events[0].Event)
	assert.Equal(t, []string{"emp", "boss"}, f.publisher.recipients[0])

	// an admin clocking for themselves is notified once
	_, err = f.service.Submit(context.Background(), admin, submit("boss", "2024-03-15", "09:00", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"boss"}, f.publisher.recipients[1])
}

func TestListByWorker(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, r := range []attendance.SubmitRequest{
		submit("emp", "2024-02-28", "08:00", "16:00"),
		submit("emp", "2024-03-14", "08:00", "16:00"),
		submit("emp", "2024-03-15", "08:00", "12:00"),
		submit("emp", "2024-03-15", "15:00", "18:00"),
	} {
		_, err := f.service.Submit(ctx, employee, r)
		require.NoError(t, err)
	}

	all, err := f.service.ListByWorker(ctx, employee, "emp", attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalCount)
	assert.Equal(t, "2024-03-15", all.Records[0].Date)
	assert.Equal(t, 1, all.Records[0].Shift)
	assert.Equal(t, 2, all.Records[1].Shift)
	assert.Equal(t, "2024-02-28", all.Records[3].Date)

	month := "2024-03"
	march, err := f.service.ListByWorker(ctx, employee, "emp", attendance.ListFilter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, 3, march.TotalCount)

	_, err = f.service.ListByWorker(ctx, employee, "other", attendance.ListFilter{})
	assert.ErrorIs(t, err, worker.ErrForbidden)

	bad := "2024-3"
	_, err = f.service.ListByWorker(ctx, employee, "emp", attendance.ListFilter{Month: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestListAll(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, admin, submit("other", "2024-03-15", "08:00", ""))
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, employee, submit("emp", "2024-03-15", "08:00", ""))
	require.NoError(t, err)

	resp, err := f.service.ListAll(ctx, attendance.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "emp", resp.Records[0].WorkerID)
	assert.Equal(t, "other", resp.Records[1].WorkerID)
}
