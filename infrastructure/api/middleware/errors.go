package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lapsetrack/lapsetrack/application/service"
	"github.com/lapsetrack/lapsetrack/domain/analyzer"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/collector"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError maps an error to an HTTP status and writes a JSON error body.
// Internal errors are logged and their detail withheld from the response.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("request failed", "error", err)
		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAPINum),
		errors.Is(err, wellrecord.ErrFormat),
		errors.Is(err, collector.ErrMissingParam):
		return http.StatusBadRequest
	case errors.Is(err, wellrecord.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedState),
		errors.Is(err, analyzer.ErrMissingCategory),
		errors.Is(err, analyzer.ErrInconsistentRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, collector.ErrFetch),
		errors.Is(err, collector.ErrAuthRequired):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
