package dto

// CreateScreenRequest represents the request to register a new screen
type CreateScreenRequest struct {
	BusinessID      string  `json:"-"`
	Name            string  `json:"name" validate:"required,max=255"`
	PricePerTime    float64 `json:"price_per_time" validate:"required,gt=0"`
	Characteristics string  `json:"characteristics" validate:"max=2000"`
	Traffic         int     `json:"traffic" validate:"min=0"`
	AddressID       string  `json:"address_id" validate:"required,uuid4"`
}

// CreateScreenResponse represents the response after registering a screen
type CreateScreenResponse struct {
	Message string    `json:"message"`
	Screen  ScreenDTO `json:"screen"`
}

// UpdateScreenRequest represents the request to update an existing screen
type UpdateScreenRequest struct {
	ID              string   `json:"-"`
	BusinessID      string   `json:"-"`
	Name            *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	PricePerTime    *float64 `json:"price_per_time,omitempty" validate:"omitempty,gt=0"`
	Characteristics *string  `json:"characteristics,omitempty" validate:"omitempty,max=2000"`
	Traffic         *int     `json:"traffic,omitempty" validate:"omitempty,min=0"`
	AddressID       *string  `json:"address_id,omitempty" validate:"omitempty,uuid4"`
}

// UpdateScreenResponse represents the response after updating a screen
type UpdateScreenResponse struct {
	Message string `json:"message"`
}

// ScreenDTO represents screen data in API responses
type ScreenDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PricePerTime    float64 `json:"price_per_time"`
	Characteristics string  `json:"characteristics"`
	Traffic         int     `json:"traffic"`
	AddressName     string  `json:"address_name,omitempty"`
	BusinessID      string  `json:"business_id"`
}

// ListScreensResponse represents the screen browsing response
type ListScreensResponse struct {
	Screens []ScreenDTO `json:"screens"`
	Total   int         `json:"total"`
}

// OptimalScreensRequest asks for a screen set maximizing traffic within budget
type OptimalScreensRequest struct {
	Budget      float64  `json:"budget" validate:"required,gt=0"`
	CategoryIDs []string `json:"category_ids" validate:"required,min=1,dive,uuid4"`
}

// OptimalScreensResponse carries the selected screens in purchase order
type OptimalScreensResponse struct {
	Screens         []ScreenDTO `json:"screens"`
	TotalCost       float64     `json:"total_cost"`
	TotalTraffic    int         `json:"total_traffic"`
	RemainingBudget float64     `json:"remaining_budget"`
}
