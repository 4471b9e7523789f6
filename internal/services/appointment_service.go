package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dalilcare/provider-directory/internal/metrics"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
)

// ErrInvalidTransition is returned for a disallowed status change
var ErrInvalidTransition = fmt.Errorf("invalid appointment status transition")

// BookingRequest describes a new appointment
type BookingRequest struct {
	ProviderID  uuid.UUID `json:"provider_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason,omitempty"`
	HomeVisit   bool      `json:"home_visit"`
}

// AppointmentService handles booking lifecycle
type AppointmentService struct {
	apptRepo     *repository.AppointmentRepository
	providerRepo *repository.ProviderRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(apptRepo *repository.AppointmentRepository, providerRepo *repository.ProviderRepository) *AppointmentService {
	return &AppointmentService{apptRepo: apptRepo, providerRepo: providerRepo}
}

// Book creates a pending appointment with the given provider
func (s *AppointmentService) Book(ctx context.Context, user models.UserContext, req *BookingRequest) (*models.Appointment, error) {
	if req.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("scheduled time is required")
	}

	provider, err := s.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if req.HomeVisit && !provider.HomeVisitAvailable {
		return nil, fmt.Errorf("provider does not offer home visits")
	}

	appt := &models.Appointment{
		ProviderID:  req.ProviderID,
		UserID:      user.UserID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		HomeVisit:   req.HomeVisit,
		Status:      models.AppointmentPending,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	metrics.AppointmentsBooked.Inc()
	return appt, nil
}

// ListMine retrieves the calling user's appointments
func (s *AppointmentService) ListMine(ctx context.Context, user models.UserContext) ([]models.Appointment, error) {
	return s.apptRepo.ListByUser(ctx, user.UserID)
}

// ListForProvider retrieves a provider's appointments. Only the owner or an
// admin may list them.
func (s *AppointmentService) ListForProvider(ctx context.Context, user models.UserContext, providerID uuid.UUID) ([]models.Appointment, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && (provider.OwnerUserID == nil || *provider.OwnerUserID != user.UserID) {
		return nil, ErrForbidden
	}
	return s.apptRepo.ListByProvider(ctx, providerID)
}

// Transition applies a status change. Confirm and complete belong to the
// provider side; either party may cancel. Disallowed transitions are
// rejected before any write.
func (s *AppointmentService) Transition(ctx context.Context, user models.UserContext, apptID uuid.UUID, next models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if !appt.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	provider, err := s.providerRepo.GetByID(ctx, appt.ProviderID)
	if err != nil {
		return nil, err
	}
	isPatient := appt.UserID == user.UserID
	isOwner := provider.OwnerUserID != nil && *provider.OwnerUserID == user.UserID

	switch next {
	case models.AppointmentConfirmed, models.AppointmentCompleted:
		if !isOwner && !user.IsAdmin() {
			return nil, ErrForbidden
		}
	case models.AppointmentCancelled:
		if !isPatient && !isOwner && !user.IsAdmin() {
			return nil, ErrForbidden
		}
	}

	if err := s.apptRepo.UpdateStatus(ctx, apptID, next); err != nil {
		return nil, err
	}
	appt.Status = next
	return appt, nil
}
