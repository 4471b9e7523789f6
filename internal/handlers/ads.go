package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dalilcare/provider-directory/internal/middleware"
	"github.com/dalilcare/provider-directory/internal/services"
)

type AdHandler struct {
	ads *services.AdService
}

func NewAdHandler(ads *services.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

// ListPublic returns approved, unexpired ads
func (h *AdHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.ListPublic(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// Create submits an ad for review (verified provider owners only)
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req services.AdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ad, err := h.ads.Create(r.Context(), user, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ad)
}
