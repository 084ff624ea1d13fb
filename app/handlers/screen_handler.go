package handlers

import (
	"log"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ScreenHandler handles screen management and allocation HTTP requests
type ScreenHandler struct {
	screenFlow businessflow.ScreenFlow
	validator  *validator.Validate
}

// NewScreenHandler creates a new screen handler
func NewScreenHandler(screenFlow businessflow.ScreenFlow) *ScreenHandler {
	return &ScreenHandler{
		screenFlow: screenFlow,
		validator:  validator.New(),
	}
}

// CreateScreen registers a new screen for the calling business
// @Summary Create Screen
// @Description Register an advertising screen at one of the business addresses
// @Tags Screens
// @Accept json
// @Produce json
// @Param request body dto.CreateScreenRequest true "Screen data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateScreenResponse} "Screen created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 403 {object} dto.APIResponse "Address belongs to another business"
// @Security BearerAuth
// @Router /api/v1/screens [post]
func (h *ScreenHandler) CreateScreen(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateScreenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.BusinessID = businessID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.screenFlow.CreateScreen(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAddressNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Address does not exist", "ADDRESS_NOT_FOUND", nil)
		}
		if businessflow.IsAddressAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Address belongs to another business", "ADDRESS_ACCESS_DENIED", nil)
		}
		if businessflow.IsInvalidPrice(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Price must be positive", "INVALID_PRICE", nil)
		}
		log.Println("Screen creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to create screen", "SCREEN_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// UpdateScreen updates a screen owned by the calling business
// @Summary Update Screen
// @Description Update an advertising screen
// @Tags Screens
// @Accept json
// @Produce json
// @Param id path string true "Screen ID"
// @Param request body dto.UpdateScreenRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateScreenResponse} "Screen updated"
// @Failure 403 {object} dto.APIResponse "Screen belongs to another business"
// @Failure 404 {object} dto.APIResponse "Screen not found"
// @Security BearerAuth
// @Router /api/v1/screens/{id} [put]
func (h *ScreenHandler) UpdateScreen(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateScreenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = c.Params("id")
	req.BusinessID = businessID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.screenFlow.UpdateScreen(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsScreenNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Screen not found", "SCREEN_NOT_FOUND", nil)
		}
		if businessflow.IsScreenAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Screen belongs to another business", "SCREEN_ACCESS_DENIED", nil)
		}
		if businessflow.IsAddressNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Address does not exist", "ADDRESS_NOT_FOUND", nil)
		}
		if businessflow.IsAddressAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Address belongs to another business", "ADDRESS_ACCESS_DENIED", nil)
		}
		if businessflow.IsInvalidPrice(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Price must be positive", "INVALID_PRICE", nil)
		}
		log.Println("Screen update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update screen", "SCREEN_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// ListScreens returns all screens with their addresses for browsing
// @Summary Browse Screens
// @Description List all advertising screens with address names
// @Tags Screens
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListScreensResponse} "Screens listed"
// @Security BearerAuth
// @Router /api/v1/screens [get]
func (h *ScreenHandler) ListScreens(c fiber.Ctx) error {
	result, err := h.screenFlow.ListScreens(requestContext(c))
	if err != nil {
		log.Println("Screen listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list screens", "SCREEN_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Screens listed", result)
}

// ListMyScreens returns the screens owned by the calling business
// @Summary List Own Screens
// @Description List the screens registered by the calling business
// @Tags Screens
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListScreensResponse} "Screens listed"
// @Security BearerAuth
// @Router /api/v1/businesses/screens [get]
func (h *ScreenHandler) ListMyScreens(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.screenFlow.ListBusinessScreens(requestContext(c), businessID.String())
	if err != nil {
		log.Println("Screen listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list screens", "SCREEN_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Screens listed", result)
}

// FindOptimalScreens selects a traffic-maximizing screen set within budget
// @Summary Optimal Screen Allocation
// @Description Select screens from the given categories maximizing traffic within the budget
// @Tags Screens
// @Accept json
// @Produce json
// @Param request body dto.OptimalScreensRequest true "Budget and categories"
// @Success 200 {object} dto.APIResponse{data=dto.OptimalScreensResponse} "Allocation computed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Security BearerAuth
// @Router /api/v1/screens/optimal [post]
func (h *ScreenHandler) FindOptimalScreens(c fiber.Ctx) error {
	var req dto.OptimalScreensRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.screenFlow.FindOptimalScreens(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidBudget(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Budget must be positive", "INVALID_BUDGET", nil)
		}
		if businessflow.IsNoCategoryProvided(err) {
			return errorResponse(c, fiber.StatusBadRequest, "At least one category is required", "NO_CATEGORY_PROVIDED", nil)
		}
		if businessflow.IsCategoryNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "One or more categories do not exist", "CATEGORY_NOT_FOUND", nil)
		}
		log.Println("Screen allocation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to compute allocation", "ALLOCATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Allocation computed", result)
}
