// Package businessflow contains the business logic for the application.
package businessflow

import (
	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for logging and tracing
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToScreenDTO converts a screen model to its API representation
func ToScreenDTO(screen models.Screen) dto.ScreenDTO {
	return dto.ScreenDTO{
		ID:              screen.ID.String(),
		Name:            screen.Name,
		PricePerTime:    screen.PricePerTime,
		Characteristics: screen.Characteristics,
		Traffic:         screen.Traffic,
		BusinessID:      screen.BusinessID.String(),
	}
}

// ToScreenWithAddressDTO converts a screen read model to its API representation
func ToScreenWithAddressDTO(screen models.ScreenWithAddress) dto.ScreenDTO {
	return dto.ScreenDTO{
		ID:              screen.ID.String(),
		Name:            screen.Name,
		PricePerTime:    screen.PricePerTime,
		Characteristics: screen.Characteristics,
		Traffic:         screen.Traffic,
		AddressName:     screen.AddressName,
		BusinessID:      screen.BusinessID.String(),
	}
}

// ToAdDTO converts an ad model to its API representation
func ToAdDTO(ad models.Ad) dto.AdDTO {
	return dto.AdDTO{
		ID:        ad.ID.String(),
		Name:      ad.Name,
		ImgURL:    ad.ImgURL,
		Status:    ad.Status.String(),
		UserID:    ad.UserID.String(),
		CreatedAt: ad.CreatedAt,
	}
}

// ToAdOrderDTO converts an order model to its API representation
func ToAdOrderDTO(order models.AdOrder) dto.AdOrderDTO {
	return dto.AdOrderDTO{
		ID:        order.ID.String(),
		StartTime: order.StartTime,
		EndTime:   order.EndTime,
		Price:     order.Price,
		Status:    order.Status.String(),
		AdID:      order.AdID.String(),
		ScreenID:  order.ScreenID.String(),
		CreatedAt: order.CreatedAt,
	}
}

// ToBusinessOrderDTO converts a denormalized order row to its API representation
func ToBusinessOrderDTO(row models.AdOrderAllData) dto.BusinessOrderDTO {
	return dto.BusinessOrderDTO{
		OrderID:     row.OrderID.String(),
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		Price:       row.Price,
		Status:      row.Status.String(),
		AdName:      row.Ad.Name,
		AdImgURL:    row.Ad.ImgURL,
		ClientName:  row.Client.Name,
		ClientEmail: row.Client.Email,
		ScreenName:  row.Screen.Name,
		AddressName: row.AddressName,
	}
}

// ToIncomeDTO converts a denormalized income row to its API representation
func ToIncomeDTO(row models.IncomeAllData) dto.IncomeDTO {
	return dto.IncomeDTO{
		Price:       row.Price,
		ClientName:  row.Client.Name,
		ClientEmail: row.Client.Email,
		AdName:      row.Ad.Name,
		AdImgURL:    row.Ad.ImgURL,
	}
}

// ToCategoryDTO converts a category model to its API representation
func ToCategoryDTO(category models.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}

// ToAddressDTO converts an address model to its API representation
func ToAddressDTO(address models.Address) dto.AddressDTO {
	return dto.AddressDTO{
		ID:         address.ID.String(),
		Name:       address.Name,
		BusinessID: address.BusinessID.String(),
	}
}
