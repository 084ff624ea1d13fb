package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle status of an ad order.
// The tri-state replaces an older single is_rejected flag that doubled
// as both "not yet approved" and "rejected".
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// String returns the string representation of the status
func (s OrderStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for OrderStatus
func (s *OrderStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for OrderStatus
func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid OrderStatus: %s", s)
	}
	return string(s), nil
}

// AdOrder represents a booking of a screen by an approved ad for a time window
type AdOrder struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	StartTime time.Time   `gorm:"not null" json:"start_time"`
	EndTime   time.Time   `gorm:"not null" json:"end_time"`
	Price     float64     `gorm:"not null" json:"price"`
	Status    OrderStatus `gorm:"type:ad_order_status;not null;default:'pending';index:idx_ad_orders_status" json:"status"`
	AdID      uuid.UUID   `gorm:"type:uuid;not null;index:idx_ad_orders_ad_id" json:"ad_id"`
	ScreenID  uuid.UUID   `gorm:"type:uuid;not null;index:idx_ad_orders_screen_id" json:"screen_id"`
	CreatedAt time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`

	// Relations
	Ad     *Ad     `gorm:"foreignKey:AdID;references:ID" json:"ad,omitempty"`
	Screen *Screen `gorm:"foreignKey:ScreenID;references:ID" json:"screen,omitempty"`
}

// TableName returns the table name for the model
func (AdOrder) TableName() string {
	return "ad_orders"
}

// BeforeCreate is called before creating a new record
func (o *AdOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (o *AdOrder) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	o.UpdatedAt = &now
	return nil
}

// CanTransitionTo checks if the order can transition to the given status.
// Approving an already-approved order and rejecting an already-rejected
// order are invalid; everything else flips freely between decisions.
func (o *AdOrder) CanTransitionTo(newStatus OrderStatus) bool {
	switch newStatus {
	case OrderStatusApproved:
		return o.Status != OrderStatusApproved
	case OrderStatusRejected:
		return o.Status != OrderStatusRejected
	default:
		return false
	}
}

// AdOrderFilter represents filter criteria for ad orders
type AdOrderFilter struct {
	ID           *uuid.UUID   `json:"id,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
	AdID         *uuid.UUID   `json:"ad_id,omitempty"`
	ScreenID     *uuid.UUID   `json:"screen_id,omitempty"`
	StartAfter   *time.Time   `json:"start_after,omitempty"`
	EndBefore    *time.Time   `json:"end_before,omitempty"`
	MinPrice     *float64     `json:"min_price,omitempty"`
	MaxPrice     *float64     `json:"max_price,omitempty"`
	CreatedAfter *time.Time   `json:"created_after,omitempty"`
}

// AdOrderAllData is the denormalized read model returned to businesses:
// order fields joined with the ad, the ordering client, the screen and
// the screen's address.
type AdOrderAllData struct {
	OrderID     uuid.UUID   `json:"order_id"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
	AddressName string      `json:"address_name"`
	Ad          Ad          `json:"ad"`
	Client      User        `json:"client"`
	Screen      Screen      `json:"screen"`
}
