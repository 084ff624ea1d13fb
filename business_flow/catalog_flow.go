package businessflow

import (
	"context"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
)

// CatalogFlow handles categories and business addresses
type CatalogFlow interface {
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error)
	CreateAddress(ctx context.Context, req *dto.CreateAddressRequest, metadata *ClientMetadata) (*dto.AddressDTO, error)
	UpdateAddress(ctx context.Context, req *dto.UpdateAddressRequest, metadata *ClientMetadata) (*dto.AddressDTO, error)
	ListBusinessAddresses(ctx context.Context, businessID string) (*dto.ListAddressesResponse, error)
}

// CatalogFlowImpl implements the catalog business flow
type CatalogFlowImpl struct {
	categoryRepo repository.CategoryRepository
	addressRepo  repository.AddressRepository
	businessRepo repository.BusinessRepository
}

// NewCatalogFlow creates a new catalog flow instance
func NewCatalogFlow(
	categoryRepo repository.CategoryRepository,
	addressRepo repository.AddressRepository,
	businessRepo repository.BusinessRepository,
) CatalogFlow {
	return &CatalogFlowImpl{
		categoryRepo: categoryRepo,
		addressRepo:  addressRepo,
		businessRepo: businessRepo,
	}
}

// CreateCategory registers a new advertising category. Admin only.
func (f *CatalogFlowImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.CategoryDTO, error) {
	existing, err := f.categoryRepo.ByName(ctx, req.Name)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to check existing categories", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CATEGORY_ALREADY_EXISTS", "Category already exists", ErrCategoryAlreadyExists)
	}

	category := models.Category{Name: req.Name}
	if err := f.categoryRepo.Save(ctx, &category); err != nil {
		return nil, NewBusinessError("CATEGORY_CREATION_FAILED", "Failed to create category", err)
	}

	result := ToCategoryDTO(category)
	return &result, nil
}

// ListCategories returns all categories
func (f *CatalogFlowImpl) ListCategories(ctx context.Context) (*dto.ListCategoriesResponse, error) {
	categories, err := f.categoryRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("CATEGORY_LIST_FAILED", "Failed to list categories", err)
	}

	resp := &dto.ListCategoriesResponse{Categories: make([]dto.CategoryDTO, 0, len(categories))}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, ToCategoryDTO(*category))
	}
	return resp, nil
}

// CreateAddress registers a new address for the calling business
func (f *CatalogFlowImpl) CreateAddress(ctx context.Context, req *dto.CreateAddressRequest, metadata *ClientMetadata) (*dto.AddressDTO, error) {
	businessID, err := utils.ParseUUID(req.BusinessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	business, err := f.businessRepo.ByID(ctx, businessID)
	if err != nil {
		return nil, NewBusinessError("BUSINESS_LOOKUP_FAILED", "Failed to lookup business", err)
	}
	if business == nil {
		return nil, NewBusinessError("BUSINESS_NOT_FOUND", "Business does not exist", ErrBusinessNotFound)
	}

	address := models.Address{
		Name:       req.Name,
		BusinessID: businessID,
	}
	if err := f.addressRepo.Save(ctx, &address); err != nil {
		return nil, NewBusinessError("ADDRESS_CREATION_FAILED", "Failed to create address", err)
	}

	result := ToAddressDTO(address)
	return &result, nil
}

// UpdateAddress renames an address owned by the calling business
func (f *CatalogFlowImpl) UpdateAddress(ctx context.Context, req *dto.UpdateAddressRequest, metadata *ClientMetadata) (*dto.AddressDTO, error) {
	addressID, err := utils.ParseUUID(req.ID)
	if err != nil {
		return nil, NewBusinessError("INVALID_ADDRESS_ID", "Address id must be a valid UUID", err)
	}
	businessID, err := utils.ParseUUID(req.BusinessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	address, err := f.addressRepo.ByID(ctx, addressID)
	if err != nil {
		return nil, NewBusinessError("ADDRESS_LOOKUP_FAILED", "Failed to lookup address", err)
	}
	if address == nil {
		return nil, NewBusinessError("ADDRESS_NOT_FOUND", "Address does not exist", ErrAddressNotFound)
	}
	if address.BusinessID != businessID {
		return nil, NewBusinessError("ADDRESS_ACCESS_DENIED", "Address belongs to another business", ErrAddressAccessDenied)
	}

	address.Name = req.Name
	if err := f.addressRepo.Update(ctx, *address); err != nil {
		return nil, NewBusinessError("ADDRESS_UPDATE_FAILED", "Failed to update address", err)
	}

	result := ToAddressDTO(*address)
	return &result, nil
}

// ListBusinessAddresses returns the addresses of the calling business
func (f *CatalogFlowImpl) ListBusinessAddresses(ctx context.Context, businessID string) (*dto.ListAddressesResponse, error) {
	id, err := utils.ParseUUID(businessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	addresses, err := f.addressRepo.ByFilter(ctx, models.AddressFilter{BusinessID: &id}, "name ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("ADDRESS_LIST_FAILED", "Failed to list addresses", err)
	}

	resp := &dto.ListAddressesResponse{Addresses: make([]dto.AddressDTO, 0, len(addresses))}
	for _, address := range addresses {
		resp.Addresses = append(resp.Addresses, ToAddressDTO(*address))
	}
	return resp, nil
}
