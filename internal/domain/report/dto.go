package report

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// GridRows is the fixed number of day rows in a monthly grid, whatever the
// month's length.
const GridRows = 31

// Title is printed on top of every monthly report.
const Title = "Listado Resumen mensual del registro de jornada (completo)"

// ========================================
// MONTHLY REPORT GRID
// ========================================

// ReportGrid is the renderer-agnostic description of a worker's monthly
// two-shift attendance sheet.
type ReportGrid struct {
	Title  string       `json:"title"`
	Header ReportHeader `json:"header"`
	Rows   []ReportRow  `json:"rows"`

	// MonthlyTotal is "%.2f" of TotalHours, blank when zero
	MonthlyTotal string  `json:"monthly_total"`
	TotalHours   float64 `json:"total_hours"`

	Signatures FooterSignatures `json:"signatures"`
}

type ReportHeader struct {
	CompanyName       string `json:"company_name"`
	CompanyTaxID      string `json:"company_tax_id"`
	WorkCenter        string `json:"work_center"`
	RegistrationCode  string `json:"registration_code"`
	WorkerName        string `json:"worker_name"`
	WorkerNationalID  string `json:"worker_national_id"`
	AffiliationNumber string `json:"affiliation_number"`
	Period            string `json:"period"` // MM/YYYY
	Year              int    `json:"year"`
	Month             int    `json:"month"`
}

// ReportRow is one day of the grid. Rows past the month's last day keep
// their day number but every other field is blank and InMonth is false.
type ReportRow struct {
	Day        int       `json:"day"`
	Date       string    `json:"date,omitempty"`
	InMonth    bool      `json:"in_month"`
	Shift1     ShiftCell `json:"shift_1"`
	Shift2     ShiftCell `json:"shift_2"`
	TotalHours string    `json:"total_hours"` // "%.2f", blank when zero
}

type ShiftCell struct {
	Entry          string `json:"entry"`
	Exit           string `json:"exit"`
	EntrySignature string `json:"entry_signature,omitempty"`
	ExitSignature  string `json:"exit_signature,omitempty"`
}

// FooterSignatures are the two signature boxes under the grid.
type FooterSignatures struct {
	CompanySeal     string `json:"company_seal,omitempty"`
	WorkerSignature string `json:"worker_signature,omitempty"`
}

// SignatureRefs lists every distinct image reference the grid points at.
func (g ReportGrid) SignatureRefs() []string {
	seen := make(map[string]struct{})
	var refs []string
	add := func(ref string) {
		if ref == "" {
			return
		}
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	for _, row := range g.Rows {
		add(row.Shift1.EntrySignature)
		add(row.Shift1.ExitSignature)
		add(row.Shift2.EntrySignature)
		add(row.Shift2.ExitSignature)
	}
	add(g.Signatures.CompanySeal)
	add(g.Signatures.WorkerSignature)
	return refs
}

// ========================================
// REQUESTS
// ========================================

type MonthlyReportRequest struct {
	WorkerID string `json:"worker_id"`
	Month    string `json:"month"` // YYYY-MM
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// EXPORTS
// ========================================

// Document is a rendered, downloadable file.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ReportMonthsResponse struct {
	WorkerID string   `json:"worker_id"`
	Months   []string `json:"months"`
}
