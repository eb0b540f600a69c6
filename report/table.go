package report

import (
	"github.com/go-pdf/fpdf"

	"loan-report/domain"
)

// PaginateRows splits rows of the schedule table across pages and returns the
// number of rows on each page. The first page starts at StartY, following
// pages at TopMargin; every page repeats the header row.
func PaginateRows(t TableLayout, pageH float64, rows int) []int {
	limit := pageH - t.BottomMargin
	y := t.StartY + t.HeaderHeight

	var pages []int
	count := 0
	for i := 0; i < rows; i++ {
		if y+t.RowHeight > limit && count > 0 {
			pages = append(pages, count)
			count = 0
			y = t.TopMargin + t.HeaderHeight
		}
		y += t.RowHeight
		count++
	}
	return append(pages, count)
}

// drawTable draws the schedule starting on the current page and returns the
// y coordinate just below the last row.
func (r *Renderer) drawTable(pdf *fpdf.Fpdf, fs fontSet, periods []domain.PaymentPeriod) float64 {
	t := r.layout.Schedule.Table
	_, pageH := pdf.GetPageSize()

	y := t.StartY
	next := 0
	for page, count := range PaginateRows(t, pageH, len(periods)) {
		if page > 0 {
			pdf.AddPage()
			y = t.TopMargin
		}
		r.drawTableHeader(pdf, fs, y)
		y += t.HeaderHeight

		fs.regular(pdf, t.FontSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(t.StripeFill[0], t.StripeFill[1], t.StripeFill[2])
		for _, p := range periods[next : next+count] {
			cells := []string{
				Date(p.Date, r.labels.DateFormat),
				Money(p.RemainingBalance),
				Money(p.Interest),
				Money(p.Principal),
				Money(p.Payment),
			}
			striped := next%2 == 1
			pdf.SetXY(t.X, y)
			for c, txt := range cells {
				pdf.CellFormat(t.Widths[c], t.RowHeight, fs.translate(txt), "", 0, "L", striped, 0, "")
			}
			y += t.RowHeight
			next++
		}
	}
	return y
}

func (r *Renderer) drawTableHeader(pdf *fpdf.Fpdf, fs fontSet, y float64) {
	t := r.layout.Schedule.Table
	fs.heading(pdf, t.FontSize)
	pdf.SetFillColor(t.HeaderFill[0], t.HeaderFill[1], t.HeaderFill[2])
	pdf.SetTextColor(t.HeaderText[0], t.HeaderText[1], t.HeaderText[2])
	pdf.SetXY(t.X, y)
	for c, title := range r.labels.Columns {
		pdf.CellFormat(t.Widths[c], t.HeaderHeight, fs.translate(title), "", 0, "L", true, 0, "")
	}
}
