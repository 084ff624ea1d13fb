package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address represents a physical location where a business operates screens
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index:idx_addresses_business_id" json:"business_id"`

	// Relations
	Business *Business `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
}

// TableName returns the table name for the model
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate is called before creating a new record
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AddressFilter represents filter criteria for addresses
type AddressFilter struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
}
