package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"loan-report/domain"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before the response was ready.
const statusClientClosedRequest = 499

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case domain.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrImageLoadTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrImageLoad):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == statusClientClosedRequest {
		// Nadie espera la respuesta
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("client closed request")
		w.WriteHeader(status)
		return
	}
	resp := errorResponse{Error: err.Error()}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		resp.Field = fieldErr.Field
	}
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		resp.Error = "internal server error"
	}

	writeJSON(w, r, status, resp)
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("write response")
	}
}
