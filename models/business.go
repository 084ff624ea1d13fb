package models

import (
	"time"

	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business represents a venue owner that operates advertising screens
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;uniqueIndex:uk_businesses_email" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ImgURL       string    `json:"img_url"`
	CreatedAt    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Screens    []Screen   `gorm:"foreignKey:BusinessID" json:"screens,omitempty"`
	Addresses  []Address  `gorm:"foreignKey:BusinessID" json:"addresses,omitempty"`
	Categories []Category `gorm:"many2many:business_categories;joinForeignKey:BusinessID;joinReferences:CategoryID" json:"categories,omitempty"`
}

// TableName returns the table name for the model
func (Business) TableName() string {
	return "businesses"
}

// BeforeCreate is called before creating a new record
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BusinessFilter represents filter criteria for businesses
type BusinessFilter struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}
