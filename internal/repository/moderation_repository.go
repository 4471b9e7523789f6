package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/models"
)

// ClaimRepository handles claim-request database operations
type ClaimRepository struct{}

// NewClaimRepository creates a new claim repository
func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

// Create creates a new claim request
func (r *ClaimRepository) Create(ctx context.Context, claim *models.ClaimRequest) error {
	if err := database.DB.WithContext(ctx).Create(claim).Error; err != nil {
		return fmt.Errorf("failed to create claim request: %w", err)
	}
	return nil
}

// GetByID retrieves a claim request by ID
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClaimRequest, error) {
	var claim models.ClaimRequest
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&claim).Error; err != nil {
		return nil, fmt.Errorf("failed to get claim request: %w", err)
	}
	return &claim, nil
}

// HasPending reports whether a pending claim already exists for the provider
func (r *ClaimRepository) HasPending(ctx context.Context, providerID uuid.UUID) (bool, error) {
	var count int64
	if err := database.DB.WithContext(ctx).
		Model(&models.ClaimRequest{}).
		Where("provider_id = ? AND status = ?", providerID, models.ReviewPending).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count pending claims: %w", err)
	}
	return count > 0, nil
}

// ListPending retrieves pending claim requests, oldest first
func (r *ClaimRepository) ListPending(ctx context.Context) ([]models.ClaimRequest, error) {
	var claims []models.ClaimRequest
	if err := database.DB.WithContext(ctx).
		Where("status = ?", models.ReviewPending).
		Order("created_at ASC").
		Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}
	return claims, nil
}

// SetDecision records the admin decision on a claim request
func (r *ClaimRepository) SetDecision(ctx context.Context, id uuid.UUID, status models.ReviewStatus, reviewerID uuid.UUID, note string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
		"review_note": note,
	}
	if err := database.DB.WithContext(ctx).
		Model(&models.ClaimRequest{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record claim decision: %w", err)
	}
	return nil
}

// VerificationRepository handles verification-request database operations
type VerificationRepository struct{}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository() *VerificationRepository {
	return &VerificationRepository{}
}

// Create creates a new verification request
func (r *VerificationRepository) Create(ctx context.Context, req *models.VerificationRequest) error {
	if err := database.DB.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}
	return nil
}

// GetByID retrieves a verification request by ID
func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to get verification request: %w", err)
	}
	return &req, nil
}

// ListPending retrieves pending verification requests, oldest first
func (r *VerificationRepository) ListPending(ctx context.Context) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	if err := database.DB.WithContext(ctx).
		Where("status = ?", models.ReviewPending).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending verifications: %w", err)
	}
	return reqs, nil
}

// SetDecision records the admin decision on a verification request
func (r *VerificationRepository) SetDecision(ctx context.Context, id uuid.UUID, status models.ReviewStatus, reviewerID uuid.UUID, note string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
		"review_note": note,
	}
	if err := database.DB.WithContext(ctx).
		Model(&models.VerificationRequest{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record verification decision: %w", err)
	}
	return nil
}
