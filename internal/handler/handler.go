package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"beast-tins/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// domainStatus maps domain error codes to HTTP status codes.
var domainStatus = map[string]int{
	model.ErrCodeProductNotFound:    http.StatusNotFound,
	model.ErrCodeCartItemNotFound:   http.StatusNotFound,
	model.ErrCodeOrderNotFound:      http.StatusNotFound,
	model.ErrCodeInsufficientStock:  http.StatusConflict,
	model.ErrCodeInvalidTransition:  http.StatusConflict,
	model.ErrCodeProductUnavailable: http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:    http.StatusBadRequest,
	model.ErrCodeCartEmpty:          http.StatusBadRequest,
	model.ErrCodeMissingField:       http.StatusBadRequest,
	model.ErrCodeInvalidStatus:      http.StatusBadRequest,
	model.ErrCodeForbidden:          http.StatusForbidden,
}

// writeServiceError translates service errors into HTTP responses. Domain
// errors keep their code and message; anything else is masked as a
// generic failure.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := domainStatus[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		logger.Debug().Str("code", domainErr.Code).Int("status", status).Msg("domain error")
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	writeError(w, http.StatusInternalServerError, fallback, logger)
}
