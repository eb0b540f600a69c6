package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"loan-report/domain"
	"loan-report/seal"
)

const (
	primarySealName   = "seal-primary"
	secondarySealName = "seal-secondary"
)

// Document is everything needed to draw one loan report.
type Document struct {
	ID        string
	Input     domain.LoanInput
	Result    domain.AmortizationResult
	Seals     seal.Pair
	CreatedAt time.Time
}

type Rendered struct {
	Content []byte
	Pages   int
}

// Renderer draws loan reports for a single locale.
type Renderer struct {
	layout *Layout
	labels Labels
	fonts  Fonts
}

// NewRenderer checks that the locale exists and can be printed with fonts.
func NewRenderer(layout *Layout, locale string, fonts Fonts) (*Renderer, error) {
	labels, err := layout.Labels(locale)
	if err != nil {
		return nil, err
	}
	if !fonts.hasUTF8() && !labels.Latin {
		return nil, fmt.Errorf("%w: locale %q requires a TrueType font", domain.ErrFontUnavailable, locale)
	}
	return &Renderer{layout: layout, labels: labels, fonts: fonts}, nil
}

// Filename is the fixed download name for this locale.
func (r *Renderer) Filename() string {
	return r.labels.Filename
}

// Render lays out the summary page and the schedule pages.
func (r *Renderer) Render(doc Document) (*Rendered, error) {
	page := r.layout.Page
	pdf := fpdf.New(page.Orientation, page.Unit, page.Size, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(r.layout.Schedule.Table.X, r.layout.Schedule.Table.TopMargin, r.layout.Schedule.Table.X)
	if !doc.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.CreatedAt)
	}
	pdf.SetTitle(r.labels.Title, true)
	pdf.SetSubject(doc.ID, true)
	pdf.SetCreator("loan-report", true)

	fs, err := registerFonts(pdf, r.fonts, r.labels)
	if err != nil {
		return nil, err
	}

	if err := registerSeal(pdf, primarySealName, doc.Seals.Primary); err != nil {
		return nil, err
	}
	if err := registerSeal(pdf, secondarySealName, doc.Seals.Secondary); err != nil {
		return nil, err
	}

	r.drawSummaryPage(pdf, fs, doc)
	r.drawSchedulePage(pdf, fs, doc)

	pages := pdf.PageNo()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return &Rendered{Content: buf.Bytes(), Pages: pages}, nil
}

func registerSeal(pdf *fpdf.Fpdf, name string, img seal.Image) error {
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if pdf.Err() {
		return fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, img.Name, pdf.Error())
	}
	return nil
}

func (r *Renderer) drawSummaryPage(pdf *fpdf.Fpdf, fs fontSet, doc Document) {
	s := r.layout.Summary
	in := doc.Input

	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	fs.regular(pdf, s.Title.FontSize)
	pdf.Text(s.Title.X, s.Title.Y, fs.translate(r.labels.Title))

	blocks := [][2]string{
		{r.labels.Recipient, in.FullName},
		{r.labels.Amount, Amount(in.Amount) + r.labels.CurrencySuffix},
		{r.labels.Term, Term(in.TermMonths) + r.labels.TermSuffix},
		{r.labels.Rate, Amount(in.AnnualRatePercent) + r.labels.RateSuffix},
		{r.labels.Application, r.labels.Approved},
	}
	for i, b := range blocks {
		r.drawBlock(pdf, fs, BlockRect(s, i), b[0], b[1])
	}

	fee := BlockRect(s, len(blocks))
	fee.H = s.FeeBlock.Height
	r.drawBlockFrame(pdf, fee)

	fs.regular(pdf, s.FeeBlock.LabelFontSize)
	for i, line := range r.labels.FeeLabel {
		pdf.Text(fee.X+s.Block.LabelPadding, fee.Y+s.FeeBlock.LabelBaseline+float64(i)*s.FeeBlock.LabelLineHeight, fs.translate(line))
	}
	fs.regular(pdf, s.FeeBlock.TextFontSize)
	for i, line := range r.labels.FeeLines {
		pdf.Text(ValueX(s.Block), fee.Y+s.FeeBlock.TextBaseline+float64(i)*s.FeeBlock.TextLineHeight, fs.translate(line))
	}

	_, pageH := pdf.GetPageSize()
	r.drawSeals(pdf, doc.Seals, TitleSealAnchor(r.layout.Seals, pageH))
}

func (r *Renderer) drawBlockFrame(pdf *fpdf.Fpdf, rect Rect) {
	b := r.layout.Summary.Block
	pdf.SetFillColor(b.Fill[0], b.Fill[1], b.Fill[2])
	pdf.Rect(rect.X, rect.Y, rect.W, rect.H, "F")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(b.DividerWidth)
	dx := DividerX(b)
	pdf.Line(dx, rect.Y+b.DividerInset, dx, rect.Bottom()-b.DividerInset)
}

func (r *Renderer) drawBlock(pdf *fpdf.Fpdf, fs fontSet, rect Rect, label, value string) {
	b := r.layout.Summary.Block
	r.drawBlockFrame(pdf, rect)

	pdf.SetTextColor(0, 0, 0)
	fs.regular(pdf, b.FontSize)
	pdf.Text(rect.X+b.LabelPadding, rect.Y+b.Baseline, fs.translate(label))
	if value != "" {
		pdf.Text(ValueX(b), rect.Y+b.Baseline, fs.translate(value))
	}
}

func (r *Renderer) drawSchedulePage(pdf *fpdf.Fpdf, fs fontSet, doc Document) {
	s := r.layout.Schedule
	in := doc.Input

	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	fs.heading(pdf, s.Title.FontSize)
	pdf.Text(s.Title.X, s.Title.Y, fs.translate(r.labels.ScheduleTitle))

	fs.regular(pdf, s.SummaryFontSize)
	summary := []string{
		fmt.Sprintf(r.labels.ScheduleAmount, Amount(in.Amount)),
		fmt.Sprintf(r.labels.ScheduleTerm, Term(in.TermMonths)),
		fmt.Sprintf(r.labels.ScheduleRate, Amount(in.AnnualRatePercent)),
	}
	for i, text := range summary {
		pdf.Text(s.SummaryX[i], s.SummaryY, fs.translate(text))
	}

	endY := r.drawTable(pdf, fs, doc.Result.Schedule)

	_, pageH := pdf.GetPageSize()
	anchor := TableSealAnchor(r.layout.Seals, endY)
	if !SealsFit(r.layout.Seals, pageH, anchor, doc.Seals.Primary.AspectRatio()) {
		pdf.AddPage()
		anchor = s.Table.TopMargin
	}
	r.drawSeals(pdf, doc.Seals, anchor)
}

func (r *Renderer) drawSeals(pdf *fpdf.Fpdf, seals seal.Pair, anchorY float64) {
	pageW, _ := pdf.GetPageSize()
	primary, secondary := SealRects(r.layout.Seals, pageW, anchorY, seals.Primary.AspectRatio())

	pdf.ImageOptions(primarySealName, primary.X, primary.Y, primary.W, primary.H, false,
		fpdf.ImageOptions{ImageType: seals.Primary.Type}, 0, "")
	pdf.ImageOptions(secondarySealName, secondary.X, secondary.Y, secondary.W, secondary.H, false,
		fpdf.ImageOptions{ImageType: seals.Secondary.Type}, 0, "")
}
