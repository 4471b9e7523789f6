package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/importer"
	"github.com/dalilcare/provider-directory/internal/middleware"
	"github.com/dalilcare/provider-directory/internal/repository"
	"github.com/dalilcare/provider-directory/internal/services"
)

// maxImportSize bounds bulk-import uploads (16 MiB)
const maxImportSize = 16 << 20

type AdminHandler struct {
	directory *services.DirectoryService
	ads       *services.AdService
	importer  *services.ImportService
	auditRepo *repository.AuditRepository
}

func NewAdminHandler(
	directory *services.DirectoryService,
	ads *services.AdService,
	importService *services.ImportService,
	auditRepo *repository.AuditRepository,
) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		ads:       ads,
		importer:  importService,
		auditRepo: auditRepo,
	}
}

// Import runs a bulk provider import from an uploaded CSV or JSON file.
// Multipart form with a "file" part; format is taken from the extension,
// overridable with a "format" form value.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "An import file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format := importer.Format(strings.ToLower(r.FormValue("format")))
	if format == "" {
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".json":
			format = importer.FormatJSON
		default:
			format = importer.FormatCSV
		}
	}

	result, err := h.importer.ImportBatch(r.Context(), admin, format, file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Bulk import failed")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListClaims returns claim requests awaiting review
func (h *AdminHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.directory.ListPendingClaims(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

// ApproveClaim transfers ownership to the claimant
func (h *AdminHandler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	h.decideClaim(w, r, true)
}

// RejectClaim declines a claim request
func (h *AdminHandler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	h.decideClaim(w, r, false)
}

func (h *AdminHandler) decideClaim(w http.ResponseWriter, r *http.Request, approve bool) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid claim ID", http.StatusBadRequest)
		return
	}
	note := decisionNote(r)

	if approve {
		err = h.directory.ApproveClaim(r.Context(), admin, id, note)
	} else {
		err = h.directory.RejectClaim(r.Context(), admin, id, note)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVerifications returns verification requests awaiting review
func (h *AdminHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.directory.ListPendingVerifications(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// ApproveVerification grants the verified badge
func (h *AdminHandler) ApproveVerification(w http.ResponseWriter, r *http.Request) {
	h.decideVerification(w, r, true)
}

// RejectVerification declines a verification request
func (h *AdminHandler) RejectVerification(w http.ResponseWriter, r *http.Request) {
	h.decideVerification(w, r, false)
}

func (h *AdminHandler) decideVerification(w http.ResponseWriter, r *http.Request, approve bool) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid verification ID", http.StatusBadRequest)
		return
	}

	if err := h.directory.ReviewVerification(r.Context(), admin, id, approve, decisionNote(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPendingAds returns ads awaiting review
func (h *AdminHandler) ListPendingAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// ApproveAd publishes an ad
func (h *AdminHandler) ApproveAd(w http.ResponseWriter, r *http.Request) {
	h.decideAd(w, r, true)
}

// RejectAd declines an ad
func (h *AdminHandler) RejectAd(w http.ResponseWriter, r *http.Request) {
	h.decideAd(w, r, false)
}

func (h *AdminHandler) decideAd(w http.ResponseWriter, r *http.Request, approve bool) {
	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ad ID", http.StatusBadRequest)
		return
	}

	if err := h.ads.Review(r.Context(), admin, id, approve); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AuditTrail returns recent audit log entries
func (h *AdminHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	logs, err := h.auditRepo.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func decisionNote(r *http.Request) string {
	if r.ContentLength == 0 {
		return ""
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Note
}
