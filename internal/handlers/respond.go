package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalilcare/provider-directory/internal/services"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps service-level failures onto HTTP statuses.
// Authorization and state-machine violations were rejected synchronously by
// the service, so their message is safe to surface.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotClaimable),
		errors.Is(err, services.ErrAlreadyClaims),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
