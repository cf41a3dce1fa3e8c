package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

// AssembleReport lays out w's records for the month containing period as a
// fixed 31-row grid. A nil profile prints the default company and leaves
// the seal slot empty.
//
// The worker signature slot is w.MainSignature or, when that is unset, the
// exit signature of w's most recent record (by date, across every month)
// that has one.
func AssembleReport(w worker.Worker, profile *company.Company, records []attendance.Record, period time.Time) report.ReportGrid {
	year, month := period.Year(), period.Month()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	own := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if r.WorkerID == w.ID {
			own = append(own, r)
		}
	}

	byDate := make(map[string][]attendance.Record)
	for _, r := range own {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	grid := report.ReportGrid{
		Title:  report.Title,
		Header: header(w, profile, year, int(month)),
		Rows:   make([]report.ReportRow, 0, report.GridRows),
	}

	for day := 1; day <= report.GridRows; day++ {
		row := report.ReportRow{Day: day}
		if day > lastDay {
			grid.Rows = append(grid.Rows, row)
			continue
		}

		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		row.Date = date
		row.InMonth = true

		s1, s2 := shiftsOf(byDate[date])
		row.Shift1 = cell(s1)
		row.Shift2 = cell(s2)

		var dayTotal float64
		if s1 != nil {
			dayTotal += clock.Hours(s1.EntryTime, s1.ExitTime)
		}
		if s2 != nil {
			dayTotal += clock.Hours(s2.EntryTime, s2.ExitTime)
		}
		if dayTotal > 0 {
			row.TotalHours = fmt.Sprintf("%.2f", dayTotal)
			grid.TotalHours += dayTotal
		}

		grid.Rows = append(grid.Rows, row)
	}

	if grid.TotalHours > 0 {
		grid.MonthlyTotal = fmt.Sprintf("%.2f", grid.TotalHours)
	}

	if profile != nil {
		grid.Signatures.CompanySeal = profile.SealImage
	}
	grid.Signatures.WorkerSignature = WorkerSignature(w, own)

	return grid
}

// WorkerSignature returns the signature printed in the worker's footer slot.
func WorkerSignature(w worker.Worker, records []attendance.Record) string {
	if w.MainSignature != "" {
		return w.MainSignature
	}

	signed := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if r.WorkerID == w.ID && r.ExitSignature != "" {
			signed = append(signed, r)
		}
	}
	if len(signed) == 0 {
		return ""
	}

	sort.SliceStable(signed, func(i, j int) bool {
		return signed[i].Date > signed[j].Date
	})
	return signed[0].ExitSignature
}

func header(w worker.Worker, profile *company.Company, year, month int) report.ReportHeader {
	c := company.DefaultProfile()
	if profile != nil {
		c = *profile
	}

	return report.ReportHeader{
		CompanyName:       c.Name,
		CompanyTaxID:      c.TaxID,
		WorkCenter:        c.WorkCenter(),
		RegistrationCode:  c.RegistrationCode,
		WorkerName:        strings.ToUpper(w.FullName()),
		WorkerNationalID:  strings.ToUpper(w.NationalID),
		AffiliationNumber: w.AffiliationNumber,
		Period:            fmt.Sprintf("%02d/%d", month, year),
		Year:              year,
		Month:             month,
	}
}

// shiftsOf picks the first shift-1 and the first shift-2 record of a day.
func shiftsOf(day []attendance.Record) (s1, s2 *attendance.Record) {
	for i := range day {
		switch day[i].Shift {
		case attendance.ShiftMorning:
			if s1 == nil {
				s1 = &day[i]
			}
		case attendance.ShiftAfternoon:
			if s2 == nil {
				s2 = &day[i]
			}
		}
	}
	return s1, s2
}

func cell(r *attendance.Record) report.ShiftCell {
	if r == nil {
		return report.ShiftCell{}
	}
	return report.ShiftCell{
		Entry:          r.EntryTime,
		Exit:           r.ExitTime,
		EntrySignature: r.EntrySignature,
		ExitSignature:  r.ExitSignature,
	}
}
