package dto

// CreateCategoryRequest represents the admin request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CategoryDTO represents category data in API responses
type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCategoriesResponse represents the category listing response
type ListCategoriesResponse struct {
	Categories []CategoryDTO `json:"categories"`
}

// CreateAddressRequest represents the request to register a business address
type CreateAddressRequest struct {
	BusinessID string `json:"-"`
	Name       string `json:"name" validate:"required,max=1000"`
}

// UpdateAddressRequest represents the request to rename a business address
type UpdateAddressRequest struct {
	ID         string `json:"-"`
	BusinessID string `json:"-"`
	Name       string `json:"name" validate:"required,max=1000"`
}

// AddressDTO represents address data in API responses
type AddressDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BusinessID string `json:"business_id"`
}

// ListAddressesResponse represents the address listing response
type ListAddressesResponse struct {
	Addresses []AddressDTO `json:"addresses"`
}
