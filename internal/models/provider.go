package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderType represents the kind of directory entry
type ProviderType string

const (
	ProviderTypeDoctor     ProviderType = "doctor"
	ProviderTypeClinic     ProviderType = "clinic"
	ProviderTypeHospital   ProviderType = "hospital"
	ProviderTypePharmacy   ProviderType = "pharmacy"
	ProviderTypeLaboratory ProviderType = "laboratory"
)

// ProviderTypes lists every valid provider type
var ProviderTypes = []ProviderType{
	ProviderTypeDoctor,
	ProviderTypeClinic,
	ProviderTypeHospital,
	ProviderTypePharmacy,
	ProviderTypeLaboratory,
}

// IsValid reports whether the type is part of the fixed enumeration
func (t ProviderType) IsValid() bool {
	for _, known := range ProviderTypes {
		if t == known {
			return true
		}
	}
	return false
}

// VerificationStatus represents the admin-reviewed trust status
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Accessibility feature vocabulary
const (
	FeatureWheelchairAccess   = "wheelchair_access"
	FeatureElevator           = "elevator"
	FeatureAccessibleParking  = "accessible_parking"
	FeatureAccessibleRestroom = "accessible_restroom"
	FeatureBrailleSignage     = "braille_signage"
	FeatureSignLanguage       = "sign_language"
)

// Provider represents a directory entry (doctor, clinic, hospital, pharmacy or laboratory)
type Provider struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null;index" json:"name"`
	Type        ProviderType `gorm:"type:varchar(50);not null;index" json:"type"`
	Specialty   string       `gorm:"type:varchar(255);index" json:"specialty,omitempty"`
	Phone       string       `gorm:"type:varchar(50);not null" json:"phone"`
	Email       string       `gorm:"type:varchar(255)" json:"email,omitempty"`
	Website     string       `gorm:"type:varchar(500)" json:"website,omitempty"`
	Address     string       `gorm:"type:varchar(500);not null" json:"address"`
	City        string       `gorm:"type:varchar(255);index" json:"city,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Description string       `gorm:"type:text" json:"description,omitempty"`

	AccessibilityFeatures []string `gorm:"type:text[];default:'{}'" json:"accessibility_features"`
	EmergencyServices     bool     `gorm:"default:false" json:"emergency_services"`
	HomeVisitAvailable    bool     `gorm:"default:false" json:"home_visit_available"`
	InsuranceAccepted     bool     `gorm:"default:false" json:"insurance_accepted"`

	Rating          float64 `gorm:"default:0" json:"rating"`
	ReviewCount     int     `gorm:"default:0" json:"review_count"`
	ConsultationFee int     `gorm:"default:0" json:"consultation_fee"`

	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending';index" json:"verification_status"`

	// Provenance. A provider is claimable iff preloaded and not yet claimed.
	IsPreloaded bool       `gorm:"default:false;index" json:"is_preloaded"`
	IsClaimed   bool       `gorm:"default:false" json:"is_claimed"`
	OwnerUserID *uuid.UUID `gorm:"type:uuid;index" json:"owner_user_id,omitempty"`

	PhotoKey   string `gorm:"type:varchar(500)" json:"-"`
	LicenseKey string `gorm:"type:varchar(500)" json:"-"`

	NextAvailableAt *time.Time `json:"next_available_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Provider) TableName() string {
	return "providers"
}

// BeforeCreate hook
func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsClaimable reports whether an authenticated provider may take ownership
func (p *Provider) IsClaimable() bool {
	return p.IsPreloaded && !p.IsClaimed
}

// IsVerified reports whether the provider carries the trust badge
func (p *Provider) IsVerified() bool {
	return p.VerificationStatus == VerificationVerified
}

// HasFeature reports whether the provider lists the given accessibility feature
func (p *Provider) HasFeature(tag string) bool {
	for _, f := range p.AccessibilityFeatures {
		if strings.EqualFold(f, tag) {
			return true
		}
	}
	return false
}
