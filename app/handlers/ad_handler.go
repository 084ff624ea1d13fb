package handlers

import (
	"log"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdHandler handles ad management HTTP requests
type AdHandler struct {
	adFlow    businessflow.AdFlow
	validator *validator.Validate
}

// NewAdHandler creates a new ad handler
func NewAdHandler(adFlow businessflow.AdFlow) *AdHandler {
	return &AdHandler{
		adFlow:    adFlow,
		validator: validator.New(),
	}
}

// CreateAd submits a new ad for verification
// @Summary Create Ad
// @Description Submit a new ad; it stays unverified until an admin decides
// @Tags Ads
// @Accept json
// @Produce json
// @Param request body dto.CreateAdRequest true "Ad data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAdResponse} "Ad created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Security BearerAuth
// @Router /api/v1/ads [post]
func (h *AdHandler) CreateAd(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateAdRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.adFlow.CreateAd(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "One or more categories do not exist", "CATEGORY_NOT_FOUND", nil)
		}
		log.Println("Ad creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to create ad", "AD_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// UpdateAd updates an ad owned by the calling user
// @Summary Update Ad
// @Description Update an ad; content changes reset it to unverified
// @Tags Ads
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param request body dto.UpdateAdRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateAdResponse} "Ad updated"
// @Failure 403 {object} dto.APIResponse "Ad belongs to another user"
// @Failure 404 {object} dto.APIResponse "Ad not found"
// @Security BearerAuth
// @Router /api/v1/ads/{id} [put]
func (h *AdHandler) UpdateAd(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateAdRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = c.Params("id")
	req.UserID = userID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.adFlow.UpdateAd(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAdNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Ad not found", "AD_NOT_FOUND", nil)
		}
		if businessflow.IsAdAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Ad belongs to another user", "AD_ACCESS_DENIED", nil)
		}
		log.Println("Ad update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update ad", "AD_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// ListMyAds returns the ads owned by the calling user
// @Summary List Own Ads
// @Description List the ads submitted by the calling user
// @Tags Ads
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListAdsResponse} "Ads listed"
// @Security BearerAuth
// @Router /api/v1/ads [get]
func (h *AdHandler) ListMyAds(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.adFlow.ListUserAds(requestContext(c), userID.String())
	if err != nil {
		log.Println("Ad listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list ads", "AD_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Ads listed", result)
}

// ListAllAds returns every ad for admin review
// @Summary List All Ads
// @Description List every submitted ad for verification review
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListAdsResponse} "Ads listed"
// @Security BearerAuth
// @Router /api/v1/admin/ads [get]
func (h *AdHandler) ListAllAds(c fiber.Ctx) error {
	result, err := h.adFlow.ListAllAds(requestContext(c))
	if err != nil {
		log.Println("Ad listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list ads", "AD_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Ads listed", result)
}

// DecideAd records an admin verification decision on an ad
// @Summary Decide Ad
// @Description Approve or reject an unverified ad
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Ad ID"
// @Param request body dto.UpdateAdStatusRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateAdStatusResponse} "Decision recorded"
// @Failure 404 {object} dto.APIResponse "Ad not found"
// @Failure 409 {object} dto.APIResponse "Ad already decided"
// @Security BearerAuth
// @Router /api/v1/admin/ads/{id}/status [put]
func (h *AdHandler) DecideAd(c fiber.Ctx) error {
	var req dto.UpdateAdStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = c.Params("id")
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.adFlow.DecideAd(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAdNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Ad not found", "AD_NOT_FOUND", nil)
		}
		if businessflow.IsAdDecisionNotAllowed(err) {
			return errorResponse(c, fiber.StatusConflict, "Ad has already been decided", "AD_DECISION_NOT_ALLOWED", nil)
		}
		log.Println("Ad decision failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to record decision", "AD_DECISION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}
