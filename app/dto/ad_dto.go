package dto

import "time"

// CreateAdRequest represents the request to create a new ad
type CreateAdRequest struct {
	UserID      string   `json:"-"`
	Name        string   `json:"name" validate:"required,max=255"`
	ImgURL      string   `json:"img_url" validate:"required,max=2048"`
	CategoryIDs []string `json:"category_ids" validate:"required,min=1,dive,uuid4"`
}

// CreateAdResponse represents the response after creating an ad
type CreateAdResponse struct {
	Message string `json:"message"`
	Ad      AdDTO  `json:"ad"`
}

// UpdateAdRequest represents the request to update an existing ad.
// Any content change resets the ad back to unverified.
type UpdateAdRequest struct {
	ID     string  `json:"-"`
	UserID string  `json:"-"`
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	ImgURL *string `json:"img_url,omitempty" validate:"omitempty,max=2048"`
}

// UpdateAdResponse represents the response after updating an ad
type UpdateAdResponse struct {
	Message string `json:"message"`
}

// UpdateAdStatusRequest represents an admin decision on an unverified ad
type UpdateAdStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// UpdateAdStatusResponse represents the response after an admin decision
type UpdateAdStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// AdDTO represents ad data in API responses
type AdDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImgURL    string    `json:"img_url"`
	Status    string    `json:"status"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAdsResponse represents an ad listing response
type ListAdsResponse struct {
	Ads   []AdDTO `json:"ads"`
	Total int     `json:"total"`
}
