package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loan-report/metrics"
	"loan-report/report"
	"loan-report/service"
)

func newTestServer(t *testing.T, gen ReportGenerator, limiter *RateLimiter) *httptest.Server {
	t.Helper()
	layout, err := report.DefaultLayout()
	require.NoError(t, err)
	labels, err := layout.Labels("ru")
	require.NoError(t, err)

	m := metrics.New()
	router := NewRouter(RouterConfig{
		Loans:   NewLoanHandler(service.NewLoanService(zerolog.Nop()), m),
		Reports: NewReportHandler(gen),
		Form:    NewFormHandler("ru", labels.Form, ReportPath),
		Limiter: limiter,
		Metrics: m,
		Logger:  zerolog.New(zerolog.NewTestWriter(t)),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRouter_Form(t *testing.T) {
	srv := newTestServer(t, new(mockGenerator), nil)

	resp, body := get(t, srv.URL+"/")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `action="/loan/report"`)
	assert.Contains(t, body, "Сгенерировать PDF")
	for _, name := range []string{"fullName", "amount", "term", "rate", "startDate"} {
		assert.Contains(t, body, `name="`+name+`"`)
	}
	assert.Contains(t, body, `type="date"`)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, new(mockGenerator), nil)

	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "loan_report_http_requests_total")
}

func TestRouter_ReportRoute(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(sampleReport(), nil)
	srv := newTestServer(t, gen, nil)

	resp, err := http.Post(srv.URL+"/loan/report", "application/x-www-form-urlencoded",
		strings.NewReader("amount=10000000&term=12&rate=24&startDate=2024-01-15"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Disposition"))

	resp, _ = get(t, srv.URL+"/loan/report")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour)
	defer limiter.Stop()
	srv := newTestServer(t, new(mockGenerator), limiter)

	body := `{"amount":"1000","term":"12","rate":"10","startDate":"2024-01-01"}`
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Post(srv.URL+"/loan/calculate", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	resp, _ := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health checks are not limited")
}
