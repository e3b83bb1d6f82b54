package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the detail goes to the log,
// not the client.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var aerr *domain.AvailabilityError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error(), "VALIDATION")
	case errors.As(err, &aerr):
		writeError(w, http.StatusConflict, aerr.Error(), "UNAVAILABLE")
	case errors.Is(err, domain.ErrEquipmentNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
	default:
		logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
	}
}
