package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"loan-report/report"
	"loan-report/service"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type formPage struct {
	Lang       string
	Action     string
	Labels     report.FormLabels
	MaxNameLen int
	MinTerm    int
	MaxTerm    int
}

// FormHandler serves the input form that posts to the report endpoint.
type FormHandler struct {
	page formPage
}

func NewFormHandler(locale string, labels report.FormLabels, action string) *FormHandler {
	return &FormHandler{page: formPage{
		Lang:       locale,
		Action:     action,
		Labels:     labels,
		MaxNameLen: service.MaxFullNameLen,
		MinTerm:    service.MinTermMonths,
		MaxTerm:    service.MaxTermMonths,
	}}
}

func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, h.page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render form")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
