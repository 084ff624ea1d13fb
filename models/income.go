package models

import (
	"time"

	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Income is the revenue record credited to a business when an ad order
// is approved. The unique ad_order_id keeps the ledger single-entry per
// order across reject/re-approve cycles.
type Income struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index:idx_incomes_business_id" json:"business_id"`
	AdOrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_incomes_ad_order_id" json:"ad_order_id"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Business *Business `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
	AdOrder  *AdOrder  `gorm:"foreignKey:AdOrderID;references:ID" json:"ad_order,omitempty"`
}

// TableName returns the table name for the model
func (Income) TableName() string {
	return "incomes"
}

// BeforeCreate is called before creating a new record
func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = utils.UTCNow()
	}
	return nil
}

// IncomeFilter represents filter criteria for incomes
type IncomeFilter struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
	AdOrderID  *uuid.UUID `json:"ad_order_id,omitempty"`
	MinAmount  *float64   `json:"min_amount,omitempty"`
	MaxAmount  *float64   `json:"max_amount,omitempty"`
}

// IncomeAllData joins an income row with the paying client and the ad
// that generated it, for business reporting.
type IncomeAllData struct {
	Price  float64 `json:"price"`
	Client User    `json:"client"`
	Ad     Ad      `json:"ad"`
}
