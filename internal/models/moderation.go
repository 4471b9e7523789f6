package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus represents the state of an admin-reviewed request
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ClaimRequest represents a provider user's request to take ownership of a
// preloaded directory entry.
type ClaimRequest struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID uuid.UUID    `gorm:"type:uuid;not null;index" json:"provider_id"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	Status     ReviewStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Message    string       `gorm:"type:text" json:"message,omitempty"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote string     `gorm:"type:text" json:"review_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (ClaimRequest) TableName() string {
	return "claim_requests"
}

// BeforeCreate hook
func (c *ClaimRequest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// VerificationRequest represents a provider's request for the verified badge,
// backed by an uploaded license document.
type VerificationRequest struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"provider_id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      ReviewStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	DocumentKey string       `gorm:"type:varchar(500);not null" json:"-"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote string     `gorm:"type:text" json:"review_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (VerificationRequest) TableName() string {
	return "verification_requests"
}

// BeforeCreate hook
func (v *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// MedicalAd represents a promotional listing submitted by a verified provider
type MedicalAd struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID uuid.UUID    `gorm:"type:uuid;not null;index" json:"provider_id"`
	Title      string       `gorm:"type:varchar(255);not null" json:"title"`
	Body       string       `gorm:"type:text" json:"body,omitempty"`
	ImageKey   string       `gorm:"type:varchar(500)" json:"-"`
	Status     ReviewStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ExpiresAt  *time.Time   `json:"expires_at,omitempty"`

	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (MedicalAd) TableName() string {
	return "medical_ads"
}

// BeforeCreate hook
func (m *MedicalAd) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Favorite marks a provider bookmarked by a user
type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_favorites_user_provider,unique" json:"user_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index:idx_favorites_user_provider,unique" json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate hook
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
