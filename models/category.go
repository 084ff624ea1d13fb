package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents an advertising category shared by businesses and ads
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;uniqueIndex:uk_categories_name" json:"name"`
}

// TableName returns the table name for the model
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate is called before creating a new record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BusinessCategory is the join row linking a business to a category
type BusinessCategory struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey" json:"business_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
}

// TableName returns the table name for the model
func (BusinessCategory) TableName() string {
	return "business_categories"
}

// AdCategory is the join row linking an ad to a category
type AdCategory struct {
	AdID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"ad_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
}

// TableName returns the table name for the model
func (AdCategory) TableName() string {
	return "ad_categories"
}

// CategoryFilter represents filter criteria for categories
type CategoryFilter struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name *string    `json:"name,omitempty"`
}
