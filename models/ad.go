package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdStatus represents the verification status of an ad
type AdStatus string

const (
	AdStatusUnverified AdStatus = "unverified"
	AdStatusApproved   AdStatus = "approved"
	AdStatusRejected   AdStatus = "rejected"
)

// String returns the string representation of the status
func (s AdStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s AdStatus) Valid() bool {
	switch s {
	case AdStatusUnverified, AdStatusApproved, AdStatusRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for AdStatus
func (s *AdStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = AdStatus(v)
	case []byte:
		*s = AdStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AdStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AdStatus
func (s AdStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid AdStatus: %s", s)
	}
	return string(s), nil
}

// Ad represents a creative unit owned by a user.
// Ads start unverified and are approved or rejected by an admin before
// they can be booked onto a screen.
type Ad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ImgURL    string    `gorm:"not null" json:"img_url"`
	Status    AdStatus  `gorm:"type:ad_status;not null;default:'unverified';index:idx_ads_status" json:"status"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_ads_user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	User       *User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Categories []Category `gorm:"many2many:ad_categories;joinForeignKey:AdID;joinReferences:CategoryID" json:"categories,omitempty"`
}

// TableName returns the table name for the model
func (Ad) TableName() string {
	return "ads"
}

// BeforeCreate is called before creating a new record
func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AdStatusUnverified
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// CanTransitionTo checks if the ad can transition to the given status.
// Only an unverified ad is open for an admin decision.
func (a *Ad) CanTransitionTo(newStatus AdStatus) bool {
	switch a.Status {
	case AdStatusUnverified:
		return newStatus == AdStatusApproved || newStatus == AdStatusRejected
	default:
		return false
	}
}

// IsBookable reports whether orders may be created against this ad
func (a *Ad) IsBookable() bool {
	return a.Status == AdStatusApproved
}

// AdFilter represents filter criteria for ads
type AdFilter struct {
	ID     *uuid.UUID `json:"id,omitempty"`
	Name   *string    `json:"name,omitempty"`
	Status *AdStatus  `json:"status,omitempty"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}
