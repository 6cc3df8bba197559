package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/model"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteDomainError maps domain failures onto HTTP statuses. Upstream
// client errors keep their classification: irrecoverable validation
// failures become 400, exhausted retries against the upstream become
// 502, everything unexpected becomes 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		WriteNotFound(w, err.Error())
		return
	case errors.Is(err, model.ErrValidation):
		WriteBadRequest(w, err.Error())
		return
	}

	var apiErr *lawapi.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			WriteNotFound(w, apiErr.Message)
		case apiErr.Category == lawapi.Irrecoverable && apiErr.Status == 0 && apiErr.Err == nil:
			// Client-side validation, rejected before any upstream call.
			WriteBadRequest(w, apiErr.Message)
		case apiErr.Category == lawapi.Recoverable:
			WriteError(w, http.StatusBadGateway, apiErr.Message)
		default:
			WriteInternalError(w, apiErr.Message)
		}
		return
	}
	WriteInternalError(w, err.Error())
}
