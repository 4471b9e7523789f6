package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/middleware"
	"github.com/dalilcare/provider-directory/internal/services"
)

// maxDocumentSize bounds license/photo uploads (8 MiB)
const maxDocumentSize = 8 << 20

type ProviderHandler struct {
	directory *services.DirectoryService
}

func NewProviderHandler(directory *services.DirectoryService) *ProviderHandler {
	return &ProviderHandler{directory: directory}
}

// List returns every directory entry
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.directory.ListProviders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list providers")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// Get returns one directory entry
func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}

	provider, err := h.directory.GetProvider(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider)
}

// Register creates a provider owned by the calling account
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req services.ProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	provider, err := h.directory.RegisterProvider(r.Context(), user, &req)
	if err != nil {
		log.Warn().Err(err).Msg("Provider registration failed")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, provider)
}

// ListMine returns entries owned by the calling account
func (h *ProviderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	providers, err := h.directory.ListOwnProviders(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// Update replaces a provider's editable fields
func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}

	var req services.ProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	provider, err := h.directory.UpdateProvider(r.Context(), user, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, provider)
}

// Claim opens a claim request for a preloaded entry
func (h *ProviderHandler) Claim(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Message string `json:"message,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	claim, err := h.directory.SubmitClaim(r.Context(), user, id, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

// SubmitVerification uploads a license document and opens a verification
// request. Multipart form with a "document" file part.
func (h *ProviderHandler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		http.Error(w, "A license document is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		http.Error(w, "Failed to read document", http.StatusBadRequest)
		return
	}

	req, err := h.directory.SubmitVerification(r.Context(), user, id, data,
		header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		log.Error().Err(err).Str("provider_id", id.String()).Msg("Verification submission failed")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}
