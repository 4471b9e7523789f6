package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/models"
)

// AppointmentRepository handles appointment database operations
type AppointmentRepository struct{}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

// Create creates a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	if err := database.DB.WithContext(ctx).Create(appt).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

// ListByUser retrieves a user's appointments, newest first
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// ListByProvider retrieves a provider's appointments, newest first
func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := database.DB.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("scheduled_at DESC").
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus sets the appointment status
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	if err := database.DB.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}
