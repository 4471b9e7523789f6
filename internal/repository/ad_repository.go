package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/models"
)

// AdRepository handles medical-ad database operations
type AdRepository struct{}

// NewAdRepository creates a new ad repository
func NewAdRepository() *AdRepository {
	return &AdRepository{}
}

// Create creates a new ad
func (r *AdRepository) Create(ctx context.Context, ad *models.MedicalAd) error {
	if err := database.DB.WithContext(ctx).Create(ad).Error; err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}
	return nil
}

// GetByID retrieves an ad by ID
func (r *AdRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MedicalAd, error) {
	var ad models.MedicalAd
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return &ad, nil
}

// ListApproved retrieves approved, unexpired ads, newest first
func (r *AdRepository) ListApproved(ctx context.Context) ([]models.MedicalAd, error) {
	var ads []models.MedicalAd
	if err := database.DB.WithContext(ctx).
		Where("status = ?", models.ReviewApproved).
		Where("expires_at IS NULL OR expires_at > ?", time.Now().UTC()).
		Order("created_at DESC").
		Find(&ads).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved ads: %w", err)
	}
	return ads, nil
}

// ListPending retrieves ads awaiting review, oldest first
func (r *AdRepository) ListPending(ctx context.Context) ([]models.MedicalAd, error) {
	var ads []models.MedicalAd
	if err := database.DB.WithContext(ctx).
		Where("status = ?", models.ReviewPending).
		Order("created_at ASC").
		Find(&ads).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending ads: %w", err)
	}
	return ads, nil
}

// SetDecision records the admin decision on an ad
func (r *AdRepository) SetDecision(ctx context.Context, id uuid.UUID, status models.ReviewStatus, reviewerID uuid.UUID) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}
	if err := database.DB.WithContext(ctx).
		Model(&models.MedicalAd{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record ad decision: %w", err)
	}
	return nil
}
