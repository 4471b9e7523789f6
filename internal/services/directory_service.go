package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/cache"
	"github.com/dalilcare/provider-directory/internal/metrics"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
	"github.com/dalilcare/provider-directory/internal/storage"
)

// Synchronous authorization failures, rejected before any write
var (
	ErrForbidden     = fmt.Errorf("not allowed")
	ErrNotClaimable  = repository.ErrNotClaimable
	ErrNotVerified   = fmt.Errorf("provider is not verified")
	ErrAlreadyClaims = fmt.Errorf("a pending claim already exists for this provider")
	ErrNotPending    = fmt.Errorf("request has already been reviewed")
)

// ProviderRequest carries the fields a provider user may set
type ProviderRequest struct {
	Name                  string              `json:"name"`
	Type                  models.ProviderType `json:"type"`
	Specialty             string              `json:"specialty,omitempty"`
	Phone                 string              `json:"phone"`
	Email                 string              `json:"email,omitempty"`
	Website               string              `json:"website,omitempty"`
	Address               string              `json:"address"`
	City                  string              `json:"city,omitempty"`
	Latitude              *float64            `json:"latitude,omitempty"`
	Longitude             *float64            `json:"longitude,omitempty"`
	Description           string              `json:"description,omitempty"`
	AccessibilityFeatures []string            `json:"accessibility_features,omitempty"`
	EmergencyServices     bool                `json:"emergency_services"`
	HomeVisitAvailable    bool                `json:"home_visit_available"`
	InsuranceAccepted     bool                `json:"insurance_accepted"`
	ConsultationFee       int                 `json:"consultation_fee"`
}

// Validate checks the required fields and the type enumeration
func (r *ProviderRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("unknown provider type %q", r.Type)
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

// DirectoryService handles provider lifecycle: registration, claiming,
// verification and favorites.
type DirectoryService struct {
	providerRepo     *repository.ProviderRepository
	claimRepo        *repository.ClaimRepository
	verificationRepo *repository.VerificationRepository
	favoriteRepo     *repository.FavoriteRepository
	auditRepo        *repository.AuditRepository
	documents        storage.Store
	cache            cache.Cache
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	providerRepo *repository.ProviderRepository,
	claimRepo *repository.ClaimRepository,
	verificationRepo *repository.VerificationRepository,
	favoriteRepo *repository.FavoriteRepository,
	auditRepo *repository.AuditRepository,
	documents storage.Store,
	c cache.Cache,
) *DirectoryService {
	return &DirectoryService{
		providerRepo:     providerRepo,
		claimRepo:        claimRepo,
		verificationRepo: verificationRepo,
		favoriteRepo:     favoriteRepo,
		auditRepo:        auditRepo,
		documents:        documents,
		cache:            c,
	}
}

// RegisterProvider creates a provider owned by the calling user. Self
// registrations start unverified.
func (s *DirectoryService) RegisterProvider(ctx context.Context, user models.UserContext, req *ProviderRequest) (*models.Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider := &models.Provider{
		Name:                  req.Name,
		Type:                  req.Type,
		Specialty:             req.Specialty,
		Phone:                 req.Phone,
		Email:                 req.Email,
		Website:               req.Website,
		Address:               req.Address,
		City:                  req.City,
		Latitude:              req.Latitude,
		Longitude:             req.Longitude,
		Description:           req.Description,
		AccessibilityFeatures: req.AccessibilityFeatures,
		EmergencyServices:     req.EmergencyServices,
		HomeVisitAvailable:    req.HomeVisitAvailable,
		InsuranceAccepted:     req.InsuranceAccepted,
		ConsultationFee:       req.ConsultationFee,
		VerificationStatus:    models.VerificationPending,
		IsPreloaded:           false,
		IsClaimed:             true,
		OwnerUserID:           &user.UserID,
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return provider, nil
}

// GetProvider retrieves one directory entry
func (s *DirectoryService) GetProvider(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	return s.providerRepo.GetByID(ctx, id)
}

// ListProviders retrieves all directory entries
func (s *DirectoryService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	return s.providerRepo.ListActive(ctx)
}

// ListOwnProviders retrieves entries owned by the calling user
func (s *DirectoryService) ListOwnProviders(ctx context.Context, user models.UserContext) ([]models.Provider, error) {
	return s.providerRepo.ListByOwner(ctx, user.UserID)
}

// UpdateProvider updates an entry. Only the owner or an admin may update.
func (s *DirectoryService) UpdateProvider(ctx context.Context, user models.UserContext, id uuid.UUID, req *ProviderRequest) (*models.Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canManage(user, provider) {
		return nil, ErrForbidden
	}

	provider.Name = req.Name
	provider.Type = req.Type
	provider.Specialty = req.Specialty
	provider.Phone = req.Phone
	provider.Email = req.Email
	provider.Website = req.Website
	provider.Address = req.Address
	provider.City = req.City
	provider.Latitude = req.Latitude
	provider.Longitude = req.Longitude
	provider.Description = req.Description
	provider.AccessibilityFeatures = req.AccessibilityFeatures
	provider.EmergencyServices = req.EmergencyServices
	provider.HomeVisitAvailable = req.HomeVisitAvailable
	provider.InsuranceAccepted = req.InsuranceAccepted
	provider.ConsultationFee = req.ConsultationFee

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return provider, nil
}

// SubmitClaim opens a claim request for a preloaded entry. Non-claimable
// targets and duplicate pending claims are rejected before any write.
func (s *DirectoryService) SubmitClaim(ctx context.Context, user models.UserContext, providerID uuid.UUID, message string) (*models.ClaimRequest, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !provider.IsClaimable() {
		return nil, ErrNotClaimable
	}

	pending, err := s.claimRepo.HasPending(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyClaims
	}

	claim := &models.ClaimRequest{
		ProviderID: providerID,
		UserID:     user.UserID,
		Message:    message,
		Status:     models.ReviewPending,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// ListPendingClaims retrieves claims awaiting review
func (s *DirectoryService) ListPendingClaims(ctx context.Context) ([]models.ClaimRequest, error) {
	return s.claimRepo.ListPending(ctx)
}

// ApproveClaim transfers ownership and records the decision. The ownership
// flip is transactional; approving an already-reviewed or already-claimed
// target fails without partial state.
func (s *DirectoryService) ApproveClaim(ctx context.Context, admin models.UserContext, claimID uuid.UUID, note string) error {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != models.ReviewPending {
		return ErrNotPending
	}

	if err := s.providerRepo.Claim(ctx, claim.ProviderID, claim.UserID); err != nil {
		return err
	}
	if err := s.claimRepo.SetDecision(ctx, claimID, models.ReviewApproved, admin.UserID, note); err != nil {
		return err
	}

	metrics.ModerationDecisions.WithLabelValues("claim", "approved").Inc()
	s.audit(ctx, admin, "claim.approve", "claim_request", claimID.String(), "success", note)
	s.invalidateSearch(ctx)
	return nil
}

// RejectClaim records a rejection
func (s *DirectoryService) RejectClaim(ctx context.Context, admin models.UserContext, claimID uuid.UUID, note string) error {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != models.ReviewPending {
		return ErrNotPending
	}

	if err := s.claimRepo.SetDecision(ctx, claimID, models.ReviewRejected, admin.UserID, note); err != nil {
		return err
	}
	metrics.ModerationDecisions.WithLabelValues("claim", "rejected").Inc()
	s.audit(ctx, admin, "claim.reject", "claim_request", claimID.String(), "success", note)
	return nil
}

// SubmitVerification uploads the license document and opens a verification
// request. The upload happens first: a storage failure aborts the whole
// submission rather than leaving a request without its document.
func (s *DirectoryService) SubmitVerification(ctx context.Context, user models.UserContext, providerID uuid.UUID, document []byte, filename, contentType string) (*models.VerificationRequest, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !s.canManage(user, provider) {
		return nil, ErrForbidden
	}
	if len(document) == 0 {
		return nil, fmt.Errorf("license document is required")
	}

	key := storage.ObjectKey("licenses", providerID, filepath.Ext(filename))
	if err := s.documents.Put(ctx, key, document, contentType); err != nil {
		return nil, fmt.Errorf("failed to store license document: %w", err)
	}

	req := &models.VerificationRequest{
		ProviderID:  providerID,
		UserID:      user.UserID,
		DocumentKey: key,
		Status:      models.ReviewPending,
	}
	if err := s.verificationRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	provider.LicenseKey = key
	provider.VerificationStatus = models.VerificationPending
	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}

	return req, nil
}

// ListPendingVerifications retrieves verification requests awaiting review
func (s *DirectoryService) ListPendingVerifications(ctx context.Context) ([]models.VerificationRequest, error) {
	return s.verificationRepo.ListPending(ctx)
}

// ReviewVerification records the admin decision and updates the provider's
// trust badge accordingly.
func (s *DirectoryService) ReviewVerification(ctx context.Context, admin models.UserContext, requestID uuid.UUID, approve bool, note string) error {
	req, err := s.verificationRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != models.ReviewPending {
		return ErrNotPending
	}

	decision := models.ReviewRejected
	providerStatus := models.VerificationRejected
	outcome := "rejected"
	if approve {
		decision = models.ReviewApproved
		providerStatus = models.VerificationVerified
		outcome = "approved"
	}

	if err := s.verificationRepo.SetDecision(ctx, requestID, decision, admin.UserID, note); err != nil {
		return err
	}
	if err := s.providerRepo.SetVerificationStatus(ctx, req.ProviderID, providerStatus); err != nil {
		return err
	}

	metrics.ModerationDecisions.WithLabelValues("verification", outcome).Inc()
	s.audit(ctx, admin, "verification."+outcome, "verification_request", requestID.String(), "success", note)
	s.invalidateSearch(ctx)
	return nil
}

// AddFavorite bookmarks a provider for the user
func (s *DirectoryService) AddFavorite(ctx context.Context, user models.UserContext, providerID uuid.UUID) error {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, user.UserID, providerID)
}

// RemoveFavorite removes a bookmark
func (s *DirectoryService) RemoveFavorite(ctx context.Context, user models.UserContext, providerID uuid.UUID) error {
	return s.favoriteRepo.Remove(ctx, user.UserID, providerID)
}

// ListFavorites resolves the user's bookmarks to provider records
func (s *DirectoryService) ListFavorites(ctx context.Context, user models.UserContext) ([]models.Provider, error) {
	favs, err := s.favoriteRepo.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	providers := make([]models.Provider, 0, len(favs))
	for _, fav := range favs {
		provider, err := s.providerRepo.GetByID(ctx, fav.ProviderID)
		if err != nil {
			// Bookmark may outlive the provider; skip it
			continue
		}
		providers = append(providers, *provider)
	}
	return providers, nil
}

func (s *DirectoryService) canManage(user models.UserContext, provider *models.Provider) bool {
	if user.IsAdmin() {
		return true
	}
	return provider.OwnerUserID != nil && *provider.OwnerUserID == user.UserID
}

func (s *DirectoryService) invalidateSearch(ctx context.Context) {
	if err := s.cache.Clear(ctx, cache.SearchKeyPattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate search cache")
	}
}

func (s *DirectoryService) audit(ctx context.Context, actor models.UserContext, action, resourceType, resourceID, status, detail string) {
	entry := &models.AuditLog{
		ActorID:      actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       status,
		Detail:       detail,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}
