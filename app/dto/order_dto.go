package dto

import "time"

// CreateAdOrderRequest represents the request to book an ad onto a screen
type CreateAdOrderRequest struct {
	UserID    string    `json:"-"`
	AdID      string    `json:"ad_id" validate:"required,uuid4"`
	ScreenID  string    `json:"screen_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Price     float64   `json:"price" validate:"required,gt=0"`
}

// CreateAdOrderResponse represents the response after booking
type CreateAdOrderResponse struct {
	Message string     `json:"message"`
	Order   AdOrderDTO `json:"order"`
}

// DecideAdOrderRequest represents a business decision on an order
type DecideAdOrderRequest struct {
	OrderID    string `json:"-"`
	BusinessID string `json:"-"`
}

// DecideAdOrderResponse represents the response after a decision
type DecideAdOrderResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// AdOrderDTO represents order data in API responses
type AdOrderDTO struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	AdID      string    `json:"ad_id"`
	ScreenID  string    `json:"screen_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BusinessOrderDTO represents a denormalized order row for venue owners
type BusinessOrderDTO struct {
	OrderID     string    `json:"order_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	AdName      string    `json:"ad_name"`
	AdImgURL    string    `json:"ad_img_url"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ScreenName  string    `json:"screen_name"`
	AddressName string    `json:"address_name"`
}

// ListBusinessOrdersResponse represents the business order listing response
type ListBusinessOrdersResponse struct {
	Orders []BusinessOrderDTO `json:"orders"`
	Total  int                `json:"total"`
}

// ListUserOrdersResponse represents the advertiser order listing response
type ListUserOrdersResponse struct {
	Orders []AdOrderDTO `json:"orders"`
	Total  int          `json:"total"`
}
