package http

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"loan-report/domain"
)

// ReportGenerator builds a loan report from the raw form.
type ReportGenerator interface {
	Generate(ctx context.Context, form domain.LoanForm) (*domain.Report, error)
}

type ReportHandler struct {
	reports ReportGenerator
}

func NewReportHandler(reports ReportGenerator) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GenerateReport accepts the form as JSON or urlencoded fields and streams the
// PDF back as a download.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, err := decodeLoanForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.reports.Generate(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.Filename,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.Header().Set("X-Report-Id", report.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("report_id", report.ID).Msg("write report")
	}
}

func decodeLoanForm(w http.ResponseWriter, r *http.Request) (domain.LoanForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var form domain.LoanForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return domain.LoanForm{}, fmt.Errorf("%w: invalid request body", domain.ErrInvalidNumericInput)
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return domain.LoanForm{}, fmt.Errorf("%w: invalid form body", domain.ErrInvalidNumericInput)
	}
	return domain.LoanForm{
		FullName:  r.PostForm.Get("fullName"),
		Amount:    r.PostForm.Get("amount"),
		Term:      r.PostForm.Get("term"),
		Rate:      r.PostForm.Get("rate"),
		StartDate: r.PostForm.Get("startDate"),
	}, nil
}
