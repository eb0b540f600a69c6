package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"loan-report/domain"
	"loan-report/metrics"
	"loan-report/service"
)

const maxBodyBytes = 64 << 10

type LoanHandler struct {
	service *service.LoanService
	metrics *metrics.Metrics
}

// NewLoanHandler creates the JSON calculator handler. m may be nil.
func NewLoanHandler(service *service.LoanService, m *metrics.Metrics) *LoanHandler {
	return &LoanHandler{service: service, metrics: m}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Limitar tamaño del body
	var form domain.LoanForm
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		h.count("invalid")
		writeError(w, r, fmt.Errorf("%w: invalid request body", domain.ErrInvalidNumericInput))
		return
	}

	result, err := h.service.CalculateForm(form)
	if err != nil {
		h.count("invalid")
		writeError(w, r, err)
		return
	}

	h.count("ok")
	writeJSON(w, r, http.StatusOK, result)
}

func (h *LoanHandler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.CalculationsTotal.WithLabelValues(outcome).Inc()
	}
}
