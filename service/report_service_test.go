package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-report/domain"
	"loan-report/report"
	"loan-report/seal"
)

type mapSource map[string][]byte

func (m mapSource) Open(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, domain.ErrImageLoad
	}
	return data, nil
}

type blockingSource struct{}

func (blockingSource) Open(ctx context.Context, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type recordingRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingRecorder) ObserveReport(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 30, G: 60, B: 160, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestReportService(t *testing.T, src seal.Source, rec ReportRecorder) *ReportService {
	t.Helper()
	layout, err := report.DefaultLayout()
	require.NoError(t, err)
	renderer, err := report.NewRenderer(layout, "en", report.Fonts{})
	require.NoError(t, err)

	return NewReportService(
		NewLoanService(zerolog.Nop()),
		src,
		renderer,
		ReportOptions{PrimarySeal: "seal1.png", SecondarySeal: "seal2.png", SealTimeout: 200 * time.Millisecond},
		rec,
		zerolog.Nop(),
	)
}

func TestReportService_Generate(t *testing.T) {
	rec := &recordingRecorder{}
	src := mapSource{
		"seal1.png": testPNG(t, 120, 80),
		"seal2.png": testPNG(t, 100, 100),
	}
	svc := newTestReportService(t, src, rec)

	rep, err := svc.Generate(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "Loan.pdf", rep.Filename)
	assert.Equal(t, "application/pdf", rep.ContentType)
	assert.Equal(t, 2, rep.Pages)
	assert.True(t, bytes.HasPrefix(rep.Content, []byte("%PDF-")))
	assert.Equal(t, []string{OutcomeOK}, rec.outcomes)
}

func TestReportService_Generate_InvalidForm(t *testing.T) {
	rec := &recordingRecorder{}
	svc := newTestReportService(t, mapSource{}, rec)

	form := validForm()
	form.Term = "twelve"
	_, err := svc.Generate(context.Background(), form)

	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
	assert.Equal(t, []string{OutcomeInvalid}, rec.outcomes)
}

func TestReportService_Generate_MissingSeal(t *testing.T) {
	rec := &recordingRecorder{}
	svc := newTestReportService(t, mapSource{"seal1.png": testPNG(t, 10, 10)}, rec)

	_, err := svc.Generate(context.Background(), validForm())

	require.ErrorIs(t, err, domain.ErrImageLoad)
	assert.Equal(t, []string{OutcomeSealError}, rec.outcomes)
}

func TestReportService_Generate_SealTimeout(t *testing.T) {
	rec := &recordingRecorder{}
	svc := newTestReportService(t, blockingSource{}, rec)

	start := time.Now()
	_, err := svc.Generate(context.Background(), validForm())

	require.ErrorIs(t, err, domain.ErrImageLoadTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, []string{OutcomeSealTimeout}, rec.outcomes)
}

func TestReportService_Generate_Canceled(t *testing.T) {
	rec := &recordingRecorder{}
	svc := newTestReportService(t, blockingSource{}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := svc.Generate(ctx, validForm())

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrImageLoad)
	assert.Equal(t, []string{OutcomeCanceled}, rec.outcomes)
}

func TestReportService_NilRecorder(t *testing.T) {
	src := mapSource{
		"seal1.png": testPNG(t, 50, 50),
		"seal2.png": testPNG(t, 50, 50),
	}
	svc := newTestReportService(t, src, nil)

	_, err := svc.Generate(context.Background(), validForm())
	assert.NoError(t, err)
}

func TestReportService_Generate_TinyRate(t *testing.T) {
	src := mapSource{
		"seal1.png": testPNG(t, 120, 80),
		"seal2.png": testPNG(t, 100, 100),
	}

	for _, rate := range []string{"0.0000000000001", "0.000000001"} {
		t.Run(rate, func(t *testing.T) {
			rec := &recordingRecorder{}
			svc := newTestReportService(t, src, rec)
			form := validForm()
			form.Rate = rate

			var rep *domain.Report
			var err error
			require.NotPanics(t, func() {
				rep, err = svc.Generate(context.Background(), form)
			})
			require.NoError(t, err)
			assert.Equal(t, 2, rep.Pages)
			assert.Equal(t, []string{OutcomeOK}, rec.outcomes)
		})
	}
}
