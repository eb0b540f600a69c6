package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReport(t *testing.T) {
	m := New()

	m.ObserveReport("ok", 120*time.Millisecond)
	m.ObserveReport("ok", 80*time.Millisecond)
	m.ObserveReport("seal_timeout", 10*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsTotal.WithLabelValues("seal_timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReportDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RateLimitedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "loan_report_rate_limited_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
