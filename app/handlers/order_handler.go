package handlers

import (
	"context"
	"log"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// OrderHandler handles ad order HTTP requests
type OrderHandler struct {
	orderFlow businessflow.OrderFlow
	validator *validator.Validate
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderFlow businessflow.OrderFlow) *OrderHandler {
	return &OrderHandler{
		orderFlow: orderFlow,
		validator: validator.New(),
	}
}

// CreateOrder books an approved ad onto a screen
// @Summary Create Ad Order
// @Description Book an approved ad onto a screen for a time window
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.CreateAdOrderRequest true "Order data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAdOrderResponse} "Order created"
// @Failure 400 {object} dto.APIResponse "Ad not bookable or invalid window"
// @Security BearerAuth
// @Router /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateAdOrderRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID.String()
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.orderFlow.CreateAdOrder(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsAdNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Ad not found", "AD_NOT_FOUND", nil)
		}
		if businessflow.IsAdAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Ad belongs to another user", "AD_ACCESS_DENIED", nil)
		}
		if businessflow.IsAdUnverified(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Ad has not been verified yet", "AD_UNVERIFIED", nil)
		}
		if businessflow.IsAdRejected(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Ad has been rejected", "AD_REJECTED", nil)
		}
		if businessflow.IsScreenNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Screen not found", "SCREEN_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidTimeWindow(err) {
			return errorResponse(c, fiber.StatusBadRequest, "End time must be after start time", "INVALID_TIME_WINDOW", nil)
		}
		if businessflow.IsInvalidPrice(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Price must be positive", "INVALID_PRICE", nil)
		}
		log.Println("Order creation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to create order", "ORDER_CREATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// ApproveOrder approves a pending or rejected order and books the income
// @Summary Approve Ad Order
// @Description Approve an order placed against one of the business screens
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecideAdOrderResponse} "Order approved"
// @Failure 404 {object} dto.APIResponse "Order not found"
// @Failure 409 {object} dto.APIResponse "Order already approved"
// @Security BearerAuth
// @Router /api/v1/orders/{id}/approve [post]
func (h *OrderHandler) ApproveOrder(c fiber.Ctx) error {
	return h.decide(c, h.orderFlow.ApproveAdOrder)
}

// RejectOrder rejects a pending or approved order
// @Summary Reject Ad Order
// @Description Reject an order placed against one of the business screens
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecideAdOrderResponse} "Order rejected"
// @Failure 404 {object} dto.APIResponse "Order not found"
// @Failure 409 {object} dto.APIResponse "Order already rejected"
// @Security BearerAuth
// @Router /api/v1/orders/{id}/reject [post]
func (h *OrderHandler) RejectOrder(c fiber.Ctx) error {
	return h.decide(c, h.orderFlow.RejectAdOrder)
}

type decideFunc func(ctx context.Context, req *dto.DecideAdOrderRequest, metadata *businessflow.ClientMetadata) (*dto.DecideAdOrderResponse, error)

func (h *OrderHandler) decide(c fiber.Ctx, flow decideFunc) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.DecideAdOrderRequest{
		OrderID:    c.Params("id"),
		BusinessID: businessID.String(),
	}

	result, err := flow(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsOrderNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Order not found", "ORDER_NOT_FOUND", nil)
		}
		if businessflow.IsOrderAccessDenied(err) {
			return errorResponse(c, fiber.StatusForbidden, "Order belongs to another business", "ORDER_ACCESS_DENIED", nil)
		}
		if businessflow.IsOrderAlreadyApproved(err) {
			return errorResponse(c, fiber.StatusConflict, "Order is already approved", "ORDER_ALREADY_APPROVED", nil)
		}
		if businessflow.IsOrderAlreadyRejected(err) {
			return errorResponse(c, fiber.StatusConflict, "Order is already rejected", "ORDER_ALREADY_REJECTED", nil)
		}
		if businessflow.IsScreenNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Screen not found", "SCREEN_NOT_FOUND", nil)
		}
		log.Println("Order decision failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to record decision", "ORDER_DECISION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// ListBusinessOrders returns the orders on the calling business' screens
// @Summary List Business Orders
// @Description List orders placed against the business screens with client and ad details
// @Tags Orders
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListBusinessOrdersResponse} "Orders listed"
// @Security BearerAuth
// @Router /api/v1/businesses/orders [get]
func (h *OrderHandler) ListBusinessOrders(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.orderFlow.ListBusinessOrders(requestContext(c), businessID.String())
	if err != nil {
		log.Println("Order listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list orders", "ORDER_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Orders listed", result)
}

// ListMyOrders returns the orders placed by the calling user
// @Summary List Own Orders
// @Description List the orders placed by the calling user's ads
// @Tags Orders
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListUserOrdersResponse} "Orders listed"
// @Security BearerAuth
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.orderFlow.ListUserOrders(requestContext(c), userID.String())
	if err != nil {
		log.Println("Order listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list orders", "ORDER_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Orders listed", result)
}
