package services

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/cache"
	"github.com/dalilcare/provider-directory/internal/importer"
	"github.com/dalilcare/provider-directory/internal/metrics"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
)

// ImportResult summarizes one bulk-import batch
type ImportResult struct {
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Errors    []importer.RowError `json:"errors,omitempty"`
}

// ImportService runs admin bulk imports of preloaded providers
type ImportService struct {
	providerRepo *repository.ProviderRepository
	auditRepo    *repository.AuditRepository
	cache        cache.Cache
}

// NewImportService creates a new import service
func NewImportService(providerRepo *repository.ProviderRepository, auditRepo *repository.AuditRepository, c cache.Cache) *ImportService {
	return &ImportService{providerRepo: providerRepo, auditRepo: auditRepo, cache: c}
}

// ImportBatch parses and imports a provider batch. Rows are independent:
// validation or persistence failure of one row never blocks the others.
// The returned error is non-nil only when the file itself is unreadable.
func (s *ImportService) ImportBatch(ctx context.Context, admin models.UserContext, format importer.Format, r io.Reader) (*ImportResult, error) {
	rows, rowErrs, err := importer.Parse(format, r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Total:  len(rows) + len(rowErrs),
		Errors: rowErrs,
		Failed: len(rowErrs),
	}
	for range rowErrs {
		metrics.ImportRows.WithLabelValues("invalid").Inc()
	}

	for _, row := range rows {
		provider := row.Provider()
		if err := s.providerRepo.Create(ctx, &provider); err != nil {
			log.Error().Err(err).Int("line", row.Line).Msg("Failed to persist imported provider")
			result.Failed++
			result.Errors = append(result.Errors, importer.RowError{
				Line:    row.Line,
				Message: fmt.Sprintf("failed to save provider: %v", err),
			})
			metrics.ImportRows.WithLabelValues("failed").Inc()
			continue
		}
		result.Succeeded++
		metrics.ImportRows.WithLabelValues("imported").Inc()
	}

	if result.Succeeded > 0 {
		if err := s.cache.Clear(ctx, cache.SearchKeyPattern); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate search cache after import")
		}
	}

	status := "success"
	if result.Failed > 0 {
		status = "partial"
	}
	entry := &models.AuditLog{
		ActorID:      admin.UserID,
		Action:       "provider.import",
		ResourceType: "provider_batch",
		Status:       status,
		Detail:       fmt.Sprintf("%d imported, %d failed of %d", result.Succeeded, result.Failed, result.Total),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Msg("Failed to write import audit log")
	}

	return result, nil
}
