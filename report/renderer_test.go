package report

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-report/domain"
	"loan-report/seal"
)

func testSeals(t *testing.T) seal.Pair {
	t.Helper()
	mk := func(name string, w, h int) seal.Image {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
		img, err := seal.Decode(name, buf.Bytes())
		require.NoError(t, err)
		return img
	}
	return seal.Pair{
		Primary:   mk("seal1.png", 70, 40),
		Secondary: mk("seal2.png", 40, 40),
	}
}

func testDocument(t *testing.T, rows int) Document {
	t.Helper()
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	periods := make([]domain.PaymentPeriod, rows)
	for i := range periods {
		periods[i] = domain.PaymentPeriod{
			Date:             start.AddDate(0, i, 0),
			RemainingBalance: float64(rows-i-1) * 1000,
			Interest:         12.5,
			Principal:        1000,
			Payment:          1012.5,
		}
	}
	return Document{
		ID: "3f1c9a52-0000-4000-8000-000000000001",
		Input: domain.LoanInput{
			FullName:          "Jane Doe",
			Amount:            float64(rows) * 1000,
			TermMonths:        rows,
			AnnualRatePercent: 15,
			StartDate:         start,
		},
		Result:    domain.AmortizationResult{PeriodicPayment: 1012.5, Schedule: periods},
		Seals:     testSeals(t),
		CreatedAt: time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC),
	}
}

func newEnglishRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(defaultLayout(t), "en", Fonts{})
	require.NoError(t, err)
	return r
}

func TestRender_PageCount(t *testing.T) {
	r := newEnglishRenderer(t)

	tests := []struct {
		name  string
		rows  int
		pages int
	}{
		{"one year", 12, 2},
		{"table fills page, seals move on", 39, 3},
		{"table spills to second page", 40, 3},
		{"thirty years", 360, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(testDocument(t, tt.rows))
			require.NoError(t, err)
			assert.Equal(t, tt.pages, out.Pages)
			assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
		})
	}
}

func TestRender_BrokenSeal(t *testing.T) {
	r := newEnglishRenderer(t)
	doc := testDocument(t, 12)
	doc.Seals.Secondary = seal.Image{Name: "seal2.png", Type: "PNG", Data: []byte("garbage"), Width: 1, Height: 1}

	_, err := r.Render(doc)
	assert.ErrorIs(t, err, domain.ErrImageLoad)
}

func TestNewRenderer_NonLatinLocaleNeedsFont(t *testing.T) {
	_, err := NewRenderer(defaultLayout(t), "ru", Fonts{})
	assert.ErrorIs(t, err, domain.ErrFontUnavailable)

	_, err = NewRenderer(defaultLayout(t), "xx", Fonts{})
	assert.Error(t, err)
}

func TestRender_RussianWithEmbeddedFonts(t *testing.T) {
	r, err := NewRenderer(defaultLayout(t), "ru", DefaultFonts())
	require.NoError(t, err)
	assert.Equal(t, "Кредит.pdf", r.Filename())

	doc := testDocument(t, 12)
	doc.Input.FullName = "Иван Иванович Петров"
	out, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pages)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
}

func TestLoadFonts(t *testing.T) {
	_, err := LoadFonts("/nonexistent/font.ttf", "")
	assert.ErrorIs(t, err, domain.ErrFontUnavailable)

	fonts, err := LoadFonts("", "")
	require.NoError(t, err)
	assert.True(t, fonts.hasUTF8())
	assert.Equal(t, DefaultFonts(), fonts)

	path := filepath.Join(t.TempDir(), "custom.ttf")
	require.NoError(t, os.WriteFile(path, DefaultFonts().Bold, 0o600))
	fonts, err = LoadFonts(path, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFonts().Bold, fonts.Regular)
}
