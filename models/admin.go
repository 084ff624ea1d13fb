package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin represents a platform operator able to verify ads and manage inventory
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;uniqueIndex:uk_admins_name" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// TableName returns the table name for the model
func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate is called before creating a new record
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdminFilter represents filter criteria for admins
type AdminFilter struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name *string    `json:"name,omitempty"`
}
