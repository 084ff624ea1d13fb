package handlers

import (
	"log"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandler handles category and address HTTP requests
type CatalogHandler struct {
	catalogFlow businessflow.CatalogFlow
	validator   *validator.Validate
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogFlow businessflow.CatalogFlow) *CatalogHandler {
	return &CatalogHandler{
		catalogFlow: catalogFlow,
		validator:   validator.New(),
	}
}

// CreateCategory creates a new advertising category
// @Summary Create Category
// @Description Create an advertising category
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryDTO} "Category created"
// @Failure 409 {object} dto.APIResponse "Category already exists"
// @Security BearerAuth
// @Router /api/v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.catalogFlow.CreateCategory(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryAlreadyExists(err) {
			return errorResponse(c, fiber.StatusConflict, "Category already exists", "CATEGORY_ALREADY_EXISTS", nil)
		}
		log.Println("Category creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to create category", "CATEGORY_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, "Category created", result)
}

// ListCategories returns all advertising categories
// @Summary List Categories
// @Description List every advertising category
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListCategoriesResponse} "Categories listed"
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c fiber.Ctx) error {
	result, err := h.catalogFlow.ListCategories(requestContext(c))
	if err != nil {
		log.Println("Category listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Categories listed", result)
}

// CreateAddress registers a new address for the calling business
// @Summary Create Address
// @Description Register a venue address for the business
// @Tags Addresses
// @Accept json
// @Produce json
// @Param request body dto.CreateAddressRequest true "Address data"
// @Success 201 {object} dto.APIResponse{data=dto.AddressDTO} "Address created"
// @Security BearerAuth
// @Router /api/v1/addresses [post]
func (h *CatalogHandler) CreateAddress(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateAddressRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.BusinessID = businessID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.catalogFlow.CreateAddress(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsBusinessNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Business not found", "BUSINESS_NOT_FOUND", nil)
		}
		log.Println("Address creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to create address", "ADDRESS_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, "Address created", result)
}

// UpdateAddress renames an address owned by the calling business
// @Summary Update Address
// @Description Rename a venue address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body dto.UpdateAddressRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.AddressDTO} "Address updated"
// @Failure 403 {object} dto.APIResponse "Address belongs to another business"
// @Failure 404 {object} dto.APIResponse "Address not found"
// @Security BearerAuth
// @Router /api/v1/addresses/{id} [put]
func (h *CatalogHandler) UpdateAddress(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateAddressRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = c.Params("id")
	req.BusinessID = businessID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.catalogFlow.UpdateAddress(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAddressNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Address not found", "ADDRESS_NOT_FOUND", nil)
		}
		if businessflow.IsAddressAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Address belongs to another business", "ADDRESS_ACCESS_DENIED", nil)
		}
		log.Println("Address update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update address", "ADDRESS_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Address updated", result)
}

// ListMyAddresses returns the addresses of the calling business
// @Summary List Own Addresses
// @Description List the venue addresses registered by the business
// @Tags Addresses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListAddressesResponse} "Addresses listed"
// @Security BearerAuth
// @Router /api/v1/addresses [get]
func (h *CatalogHandler) ListMyAddresses(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.catalogFlow.ListBusinessAddresses(requestContext(c), businessID.String())
	if err != nil {
		log.Println("Address listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list addresses", "ADDRESS_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Addresses listed", result)
}
