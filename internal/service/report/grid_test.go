package report

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feb2024 = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func testWorker() worker.Worker {
	return worker.Worker{
		ID:                "w1",
		FirstName:         "Ana",
		LastName:          "Ruiz",
		NationalID:        "12345678z",
		AffiliationNumber: "28/1234567",
	}
}

func rec(date string, shift int, entry, exit string) attendance.Record {
	return attendance.Record{WorkerID: "w1", Date: date, Shift: shift, EntryTime: entry, ExitTime: exit}
}

func TestAssembleReport_AlwaysThirtyOneRows(t *testing.T) {
	grid := AssembleReport(testWorker(), nil, nil, feb2024)

	require.Len(t, grid.Rows, report.GridRows)
	for i, row := range grid.Rows {
		assert.Equal(t, i+1, row.Day)
	}

	// 2024 is a leap year
	assert.True(t, grid.Rows[28].InMonth)
	assert.Equal(t, "2024-02-29", grid.Rows[28].Date)
	assert.False(t, grid.Rows[29].InMonth)
	assert.Empty(t, grid.Rows[29].Date)
	assert.False(t, grid.Rows[30].InMonth)
}

func TestAssembleReport_RowsAndTotals(t *testing.T) {
	records := []attendance.Record{
		rec("2024-02-05", 1, "08:00", "12:00"),
		rec("2024-02-05", 2, "13:00", "17:30"),
		rec("2024-02-06", 1, "09:00", ""),      // open
		rec("2024-02-07", 1, "17:00", "09:00"), // exit before entry
		rec("2024-02-08", 2, "15:00", "19:15"),
		rec("2024-03-01", 1, "08:00", "16:00"), // other month
	}
	other := rec("2024-02-05", 1, "06:00", "14:00")
	other.WorkerID = "w2"
	records = append(records, other)

	grid := AssembleReport(testWorker(), nil, records, feb2024)

	day5 := grid.Rows[4]
	assert.Equal(t, report.ShiftCell{Entry: "08:00", Exit: "12:00"}, day5.Shift1)
	assert.Equal(t, report.ShiftCell{Entry: "13:00", Exit: "17:30"}, day5.Shift2)
	assert.Equal(t, "8.50", day5.TotalHours)

	day6 := grid.Rows[5]
	assert.Equal(t, "09:00", day6.Shift1.Entry)
	assert.Empty(t, day6.Shift1.Exit)
	assert.Empty(t, day6.TotalHours)

	assert.Empty(t, grid.Rows[6].TotalHours)

	day8 := grid.Rows[7]
	assert.Empty(t, day8.Shift1.Entry)
	assert.Equal(t, "15:00", day8.Shift2.Entry)
	assert.Equal(t, "4.25", day8.TotalHours)

	assert.Empty(t, grid.Rows[0].TotalHours)
	assert.Equal(t, 12.75, grid.TotalHours)
	assert.Equal(t, "12.75", grid.MonthlyTotal)
}

func TestAssembleReport_EmptyMonthIsBlank(t *testing.T) {
	grid := AssembleReport(testWorker(), nil, nil, feb2024)

	assert.Empty(t, grid.MonthlyTotal)
	assert.Zero(t, grid.TotalHours)
	assert.Empty(t, grid.Signatures.CompanySeal)
	assert.Empty(t, grid.Signatures.WorkerSignature)
	for _, row := range grid.Rows {
		assert.Empty(t, row.TotalHours)
		assert.Equal(t, report.ShiftCell{}, row.Shift1)
		assert.Equal(t, report.ShiftCell{}, row.Shift2)
	}
}

func TestAssembleReport_DefaultCompanyHeader(t *testing.T) {
	grid := AssembleReport(testWorker(), nil, nil, feb2024)

	assert.Equal(t, report.Title, grid.Title)
	assert.Equal(t, report.ReportHeader{
		CompanyName:       "ALBALUZ DESARROLLOS URBANOS, S.A.",
		CompanyTaxID:      "A98543432",
		WorkCenter:        "ALBALUZ DESARROLLOS URBANOS S.A",
		RegistrationCode:  "02/1089856/19",
		WorkerName:        "ANA RUIZ",
		WorkerNationalID:  "12345678Z",
		AffiliationNumber: "28/1234567",
		Period:            "02/2024",
		Year:              2024,
		Month:             2,
	}, grid.Header)
}

func TestAssembleReport_CompanyProfile(t *testing.T) {
	profile := &company.Company{
		ID:               "c1",
		Name:             "ACME S.L.",
		TaxID:            "B12345678",
		RegistrationCode: "01/234",
		SealImage:        "seal.png",
	}

	grid := AssembleReport(testWorker(), profile, nil, feb2024)

	assert.Equal(t, "ACME S.L.", grid.Header.CompanyName)
	assert.Equal(t, "B12345678", grid.Header.CompanyTaxID)
	// no address: the work center is the company name
	assert.Equal(t, "ACME S.L.", grid.Header.WorkCenter)
	assert.Equal(t, "01/234", grid.Header.RegistrationCode)
	assert.Equal(t, "seal.png", grid.Signatures.CompanySeal)
}

func TestAssembleReport_SignatureSlots(t *testing.T) {
	r := rec("2024-02-05", 1, "08:00", "12:00")
	r.EntrySignature = "in1.png"
	r.ExitSignature = "out1.png"
	r2 := rec("2024-02-05", 2, "13:00", "17:00")
	r2.ExitSignature = "out2.png"

	grid := AssembleReport(testWorker(), nil, []attendance.Record{r, r2}, feb2024)

	row := grid.Rows[4]
	assert.Equal(t, "in1.png", row.Shift1.EntrySignature)
	assert.Equal(t, "out1.png", row.Shift1.ExitSignature)
	assert.Empty(t, row.Shift2.EntrySignature)
	assert.Equal(t, "out2.png", row.Shift2.ExitSignature)

	assert.ElementsMatch(t, []string{"in1.png", "out1.png", "out2.png"}, grid.SignatureRefs())
}

func TestAssembleReport_WorkerSignatureFallsBackToLatestExitSignature(t *testing.T) {
	signed := rec("2024-02-10", 1, "08:00", "12:00")
	signed.ExitSignature = "feb10.png"
	older := rec("2024-01-20", 1, "08:00", "12:00")
	older.ExitSignature = "jan20.png"
	newerUnsigned := rec("2024-02-12", 1, "08:00", "12:00")

	grid := AssembleReport(testWorker(), nil, []attendance.Record{older, signed, newerUnsigned}, feb2024)
	assert.Equal(t, "feb10.png", grid.Signatures.WorkerSignature)
}

func TestAssembleReport_WorkerSignatureLooksAcrossMonths(t *testing.T) {
	march := rec("2024-03-02", 1, "08:00", "12:00")
	march.ExitSignature = "mar02.png"
	feb := rec("2024-02-10", 1, "08:00", "12:00")
	feb.ExitSignature = "feb10.png"

	grid := AssembleReport(testWorker(), nil, []attendance.Record{feb, march}, feb2024)
	assert.Equal(t, "mar02.png", grid.Signatures.WorkerSignature)
}

func TestAssembleReport_MainSignatureWins(t *testing.T) {
	w := testWorker()
	w.MainSignature = "main.png"
	signed := rec("2024-02-10", 1, "08:00", "12:00")
	signed.ExitSignature = "feb10.png"

	grid := AssembleReport(w, nil, []attendance.Record{signed}, feb2024)
	assert.Equal(t, "main.png", grid.Signatures.WorkerSignature)
}

func TestWorkerSignature_SameDateKeepsStorageOrder(t *testing.T) {
	a := rec("2024-02-10", 1, "08:00", "12:00")
	a.ExitSignature = "first.png"
	b := rec("2024-02-10", 2, "13:00", "17:00")
	b.ExitSignature = "second.png"

	assert.Equal(t, "first.png", WorkerSignature(testWorker(), []attendance.Record{a, b}))
}
