package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Screen represents a digital display unit owned by a business.
// Traffic and price are read-only inputs to budget allocation.
type Screen struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	PricePerTime    float64   `gorm:"not null" json:"price_per_time"`
	Characteristics string    `gorm:"type:text" json:"characteristics"`
	Traffic         int       `gorm:"not null;default:0" json:"traffic"`
	BusinessID      uuid.UUID `gorm:"type:uuid;not null;index:idx_screens_business_id" json:"business_id"`
	AddressID       uuid.UUID `gorm:"type:uuid;not null;index:idx_screens_address_id" json:"address_id"`

	// Relations
	Business *Business `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
	Address  *Address  `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
}

// TableName returns the table name for the model
func (Screen) TableName() string {
	return "screens"
}

// BeforeCreate is called before creating a new record
func (s *Screen) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Bookable reports whether the screen can participate in budget allocation.
// A non-positive price would make the value density undefined.
func (s *Screen) Bookable() bool {
	return s.PricePerTime > 0
}

// ScreenFilter represents filter criteria for screens
type ScreenFilter struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
	AddressID  *uuid.UUID `json:"address_id,omitempty"`
	MinTraffic *int       `json:"min_traffic,omitempty"`
	MaxPrice   *float64   `json:"max_price,omitempty"`
}

// ScreenWithAddress is a read model for screen browsing endpoints
type ScreenWithAddress struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PricePerTime    float64   `json:"price_per_time"`
	Characteristics string    `json:"characteristics"`
	Traffic         int       `json:"traffic"`
	AddressName     string    `json:"address_name"`
	BusinessID      uuid.UUID `json:"business_id"`
}
