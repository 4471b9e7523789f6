package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/models"
)

// ErrNotClaimable is returned when a claim targets a provider that is not
// preloaded or is already claimed.
var ErrNotClaimable = fmt.Errorf("provider is not claimable")

// ProviderStore is the read surface the search engine needs. The gorm
// repository implements it against Postgres; tests use the in-memory store.
type ProviderStore interface {
	ListActive(ctx context.Context) ([]models.Provider, error)
}

// ProviderRepository handles provider database operations
type ProviderRepository struct{}

// NewProviderRepository creates a new provider repository
func NewProviderRepository() *ProviderRepository {
	return &ProviderRepository{}
}

// Create creates a new provider
func (r *ProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	if err := database.DB.WithContext(ctx).Create(provider).Error; err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// GetByID retrieves a provider by ID
func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&provider).Error; err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return &provider, nil
}

// ListActive retrieves every non-deleted provider, oldest first
func (r *ProviderRepository) ListActive(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := database.DB.WithContext(ctx).
		Order("created_at ASC").
		Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

// ListByOwner retrieves providers owned by a user
func (r *ProviderRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Provider, error) {
	var providers []models.Provider
	if err := database.DB.WithContext(ctx).
		Where("owner_user_id = ?", userID).
		Order("created_at ASC").
		Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("failed to list providers by owner: %w", err)
	}
	return providers, nil
}

// Update updates a provider
func (r *ProviderRepository) Update(ctx context.Context, provider *models.Provider) error {
	if err := database.DB.WithContext(ctx).Save(provider).Error; err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}
	return nil
}

// SetVerificationStatus updates only the trust status
func (r *ProviderRepository) SetVerificationStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error {
	if err := database.DB.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", id).
		Update("verification_status", status).Error; err != nil {
		return fmt.Errorf("failed to set verification status: %w", err)
	}
	return nil
}

// Claim transfers ownership of a preloaded provider to a user. The claimed
// flag and owner assignment happen in one transaction, and claimability is
// re-checked inside it so concurrent approvals lose cleanly. is_preloaded is
// provenance and stays true after a claim.
func (r *ProviderRepository) Claim(ctx context.Context, providerID, userID uuid.UUID) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.Provider
		if err := tx.Where("id = ?", providerID).First(&provider).Error; err != nil {
			return fmt.Errorf("failed to get provider: %w", err)
		}
		if !provider.IsClaimable() {
			return ErrNotClaimable
		}

		updates := map[string]interface{}{
			"is_claimed":    true,
			"owner_user_id": userID,
			"updated_at":    time.Now().UTC(),
		}
		if err := tx.Model(&models.Provider{}).
			Where("id = ?", providerID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to claim provider: %w", err)
		}
		return nil
	})
}

// Delete soft deletes a provider
func (r *ProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Provider{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	return nil
}
