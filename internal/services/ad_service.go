package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/metrics"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
)

// AdRequest describes a new promotional listing
type AdRequest struct {
	ProviderID uuid.UUID  `json:"provider_id"`
	Title      string     `json:"title"`
	Body       string     `json:"body,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// AdService handles promotional listings and their moderation
type AdService struct {
	adRepo       *repository.AdRepository
	providerRepo *repository.ProviderRepository
	auditRepo    *repository.AuditRepository
}

// NewAdService creates a new ad service
func NewAdService(adRepo *repository.AdRepository, providerRepo *repository.ProviderRepository, auditRepo *repository.AuditRepository) *AdService {
	return &AdService{adRepo: adRepo, providerRepo: providerRepo, auditRepo: auditRepo}
}

// Create submits an ad for review. Only the verified owner of a provider may
// publish; unverified providers are rejected before any write.
func (s *AdService) Create(ctx context.Context, user models.UserContext, req *AdRequest) (*models.MedicalAd, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	provider, err := s.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && (provider.OwnerUserID == nil || *provider.OwnerUserID != user.UserID) {
		return nil, ErrForbidden
	}
	if !provider.IsVerified() {
		return nil, ErrNotVerified
	}

	ad := &models.MedicalAd{
		ProviderID: req.ProviderID,
		Title:      req.Title,
		Body:       req.Body,
		ExpiresAt:  req.ExpiresAt,
		Status:     models.ReviewPending,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// ListPublic retrieves approved, unexpired ads
func (s *AdService) ListPublic(ctx context.Context) ([]models.MedicalAd, error) {
	return s.adRepo.ListApproved(ctx)
}

// ListPending retrieves ads awaiting review
func (s *AdService) ListPending(ctx context.Context) ([]models.MedicalAd, error) {
	return s.adRepo.ListPending(ctx)
}

// Review records the admin decision on an ad
func (s *AdService) Review(ctx context.Context, admin models.UserContext, adID uuid.UUID, approve bool) error {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.Status != models.ReviewPending {
		return ErrNotPending
	}

	decision := models.ReviewRejected
	outcome := "rejected"
	if approve {
		decision = models.ReviewApproved
		outcome = "approved"
	}
	if err := s.adRepo.SetDecision(ctx, adID, decision, admin.UserID); err != nil {
		return err
	}

	metrics.ModerationDecisions.WithLabelValues("ad", outcome).Inc()
	entry := &models.AuditLog{
		ActorID:      admin.UserID,
		Action:       "ad." + outcome,
		ResourceType: "medical_ad",
		ResourceID:   adID.String(),
		Status:       "success",
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Msg("Failed to write ad audit log")
	}
	return nil
}
