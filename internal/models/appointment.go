package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of a booking
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment represents a booking between a patient and a provider
type Appointment struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID uuid.UUID         `gorm:"type:uuid;not null;index" json:"provider_id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Status     AppointmentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	HomeVisit   bool      `gorm:"default:false" json:"home_visit"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate hook
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CanTransitionTo reports whether the status change is allowed
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case AppointmentConfirmed:
		return a.Status == AppointmentPending
	case AppointmentCancelled:
		return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
	case AppointmentCompleted:
		return a.Status == AppointmentConfirmed
	default:
		return false
	}
}
