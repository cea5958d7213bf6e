package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"risk-dashboard/internal/api/handler/dto"
	"risk-dashboard/internal/domain/customer"
)

const (
	msgCustomerNotFound    = "Customer not found"
	msgInvalidStatus       = "Invalid status"
	msgInvalidRequestBody  = "Invalid request body"
	msgInternalServerError = "Internal server error"
)

var errInvalidRequestBody = errors.New("invalid request body")

// decodeJSON tolerates unknown fields; only the documented ones are read.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: no request body", errInvalidRequestBody)
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequestBody, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondError maps domain failures to 400 with a fixed message. Anything else
// is a 500 and its detail stays in the log.
func respondError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, msgInternalServerError

	switch {
	case errors.Is(err, customer.ErrNotFound):
		status, message = http.StatusBadRequest, msgCustomerNotFound
	case errors.Is(err, customer.ErrInvalidStatus):
		status, message = http.StatusBadRequest, msgInvalidStatus
	case errors.Is(err, errInvalidRequestBody):
		status, message = http.StatusBadRequest, msgInvalidRequestBody
	default:
		logger.ErrorContext(r.Context(), "Unhandled internal error", slog.Any("error", err))
	}

	respondJSON(w, status, dto.ErrorResponse{Error: message})
}
