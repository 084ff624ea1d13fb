package models

import (
	"time"

	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageAsset records an uploaded ad creative image stored on disk
type ImageAsset struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_image_assets_owner" json:"owner_user_id"`
	OriginalFilename string    `gorm:"not null" json:"original_filename"`
	StoredPath       string    `gorm:"not null" json:"-"`
	SizeBytes        int64     `gorm:"not null" json:"size_bytes"`
	MimeType         string    `gorm:"not null" json:"mime_type"`
	Extension        string    `gorm:"not null" json:"extension"`
	CreatedAt        time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for the model
func (ImageAsset) TableName() string {
	return "image_assets"
}

// BeforeCreate is called before creating a new record
func (a *ImageAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// ImageAssetFilter represents filter criteria for image assets
type ImageAssetFilter struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	OwnerUserID *uuid.UUID `json:"owner_user_id,omitempty"`
}
