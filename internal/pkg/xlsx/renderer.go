// Package xlsx renders monthly attendance grids as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Registro"

	// ContentType of the rendered workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerTopRow = 3
	gridHeadRow  = 8
	gridFirstRow = 10
)

// Renderer lays a report.ReportGrid out on a single A..J sheet: the header
// block, two-shift grid with per-slot signature thumbnails, the monthly
// total row and the footer signature boxes.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) ContentType() string { return ContentType }

func (r *Renderer) Extension() string { return ".xlsx" }

// Render implements report.Renderer.
func (r *Renderer) Render(grid report.ReportGrid, images map[string]report.Image) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, styles: st, images: images}

	w.title(grid.Title)
	w.header(grid.Header)
	w.gridHeader()
	for i, row := range grid.Rows {
		w.row(gridFirstRow+i, row)
	}
	totalRow := gridFirstRow + len(grid.Rows)
	w.total(totalRow, grid.MonthlyTotal)
	w.footer(totalRow+2, grid.Signatures)

	if w.err != nil {
		return nil, fmt.Errorf("failed to render report: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	title, label, value, head, cell, total int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var s styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}, Alignment: center}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 9}, Border: border}},
		{&s.value, &excelize.Style{Font: &excelize.Font{Size: 9}, Border: border}},
		{&s.head, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
			Border:    border,
			Alignment: center,
		}},
		{&s.cell, &excelize.Style{Font: &excelize.Font{Size: 9}, Border: border, Alignment: center}},
		{&s.total, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: border, Alignment: center}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetWriter remembers the first error so layout code reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	styles styles
	images map[string]report.Image
	err    error
}

func (w *sheetWriter) set(cell string, value any, style int) {
	if w.err != nil {
		return
	}
	if w.err = w.f.SetCellValue(sheetName, cell, value); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheetName, cell, cell, style)
}

func (w *sheetWriter) merge(from, to string, value any, style int) {
	if w.err != nil {
		return
	}
	if w.err = w.f.MergeCell(sheetName, from, to); w.err != nil {
		return
	}
	if w.err = w.f.SetCellValue(sheetName, from, value); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheetName, from, to, style)
}

// picture fits a loaded image into cell. Unknown references are skipped.
func (w *sheetWriter) picture(cell, ref string) {
	if w.err != nil || ref == "" {
		return
	}
	img, ok := w.images[ref]
	if !ok || len(img.Data) == 0 {
		return
	}
	w.err = w.f.AddPictureFromBytes(sheetName, cell, &excelize.Picture{
		Extension: img.Extension,
		File:      img.Data,
		Format: &excelize.GraphicOptions{
			AutoFit:         true,
			LockAspectRatio: true,
		},
	})
}

func (w *sheetWriter) title(title string) {
	w.merge("A1", "J1", title, w.styles.title)
	if w.err == nil {
		w.err = w.f.SetRowHeight(sheetName, 1, 24)
	}
	if w.err == nil {
		w.err = w.f.SetColWidth(sheetName, "A", "J", 11)
	}
}

func (w *sheetWriter) header(h report.ReportHeader) {
	lines := [][4]string{
		{"Empresa:", h.CompanyName, "Trabajador:", h.WorkerName},
		{"C.I.F./N.I.F.:", h.CompanyTaxID, "N.I.F.:", h.WorkerNationalID},
		{"Centro de Trabajo:", h.WorkCenter, "Nº Afiliación:", h.AffiliationNumber},
		{"C.C.C.:", h.RegistrationCode, "Mes y Año:", h.Period},
	}
	for i, l := range lines {
		row := headerTopRow + i
		w.set(cellName(1, row), l[0], w.styles.label)
		w.merge(cellName(2, row), cellName(5, row), l[1], w.styles.value)
		w.set(cellName(6, row), l[2], w.styles.label)
		w.merge(cellName(7, row), cellName(10, row), l[3], w.styles.value)
	}
}

func (w *sheetWriter) gridHeader() {
	top, sub := gridHeadRow, gridHeadRow+1

	w.merge(cellName(1, top), cellName(1, sub), "DIA", w.styles.head)
	w.merge(cellName(2, top), cellName(3, top), "HORA ENTRADA", w.styles.head)
	w.merge(cellName(4, top), cellName(5, top), "HORA SALIDA", w.styles.head)
	w.merge(cellName(6, top), cellName(6, sub), "HORAS TOTALES", w.styles.head)
	w.merge(cellName(7, top), cellName(8, top), "FIRMAS ENTRADA", w.styles.head)
	w.merge(cellName(9, top), cellName(10, top), "FIRMAS SALIDA", w.styles.head)

	for _, col := range []int{2, 4, 7, 9} {
		w.set(cellName(col, sub), "T1", w.styles.head)
		w.set(cellName(col+1, sub), "T2", w.styles.head)
	}
}

func (w *sheetWriter) row(n int, r report.ReportRow) {
	values := []string{
		fmt.Sprint(r.Day),
		r.Shift1.Entry, r.Shift2.Entry,
		r.Shift1.Exit, r.Shift2.Exit,
		r.TotalHours,
		"", "", "", "",
	}
	for i, v := range values {
		w.set(cellName(i+1, n), v, w.styles.cell)
	}

	if w.err == nil {
		w.err = w.f.SetRowHeight(sheetName, n, 18)
	}

	w.picture(cellName(7, n), r.Shift1.EntrySignature)
	w.picture(cellName(8, n), r.Shift2.EntrySignature)
	w.picture(cellName(9, n), r.Shift1.ExitSignature)
	w.picture(cellName(10, n), r.Shift2.ExitSignature)
}

func (w *sheetWriter) total(n int, monthly string) {
	w.set(cellName(1, n), "TOTAL HORAS", w.styles.total)
	w.merge(cellName(2, n), cellName(5, n), "", w.styles.total)
	w.set(cellName(6, n), monthly, w.styles.total)
	w.merge(cellName(7, n), cellName(10, n), "", w.styles.total)
}

func (w *sheetWriter) footer(n int, sigs report.FooterSignatures) {
	w.merge(cellName(1, n), cellName(5, n), "Firma de la empresa:", w.styles.label)
	w.merge(cellName(6, n), cellName(10, n), "Firma del trabajador:", w.styles.label)

	box := n + 1
	w.merge(cellName(1, box), cellName(5, box), "", w.styles.value)
	w.merge(cellName(6, box), cellName(10, box), "", w.styles.value)
	if w.err == nil {
		w.err = w.f.SetRowHeight(sheetName, box, 60)
	}

	w.picture(cellName(1, box), sigs.CompanySeal)
	w.picture(cellName(6, box), sigs.WorkerSignature)
}

// cellName never fails for the small positive coordinates used here.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
