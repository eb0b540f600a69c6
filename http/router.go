package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"loan-report/metrics"
)

// ReportPath is where the HTML form posts to.
const ReportPath = "/loan/report"

type RouterConfig struct {
	Loans   *LoanHandler
	Reports *ReportHandler
	Form    *FormHandler
	Limiter *RateLimiter
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// NewRouter mounts the form, the loan endpoints and the operational routes.
// Only the loan endpoints are rate limited.
func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(RequestLogger(cfg.Logger, cfg.Metrics))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	if cfg.Form != nil {
		router.Get("/", cfg.Form.ShowForm)
	}

	router.Route("/loan", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimit(cfg.Limiter, cfg.Metrics))
		}
		r.Post("/calculate", cfg.Loans.CalculateLoan)
		r.Post("/report", cfg.Reports.GenerateReport)
	})

	return router
}
