package businessflow

import (
	"context"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFlow handles the ad order lifecycle and income booking
type OrderFlow interface {
	CreateAdOrder(ctx context.Context, req *dto.CreateAdOrderRequest, metadata *ClientMetadata) (*dto.CreateAdOrderResponse, error)
	ApproveAdOrder(ctx context.Context, req *dto.DecideAdOrderRequest, metadata *ClientMetadata) (*dto.DecideAdOrderResponse, error)
	RejectAdOrder(ctx context.Context, req *dto.DecideAdOrderRequest, metadata *ClientMetadata) (*dto.DecideAdOrderResponse, error)
	ListBusinessOrders(ctx context.Context, businessID string) (*dto.ListBusinessOrdersResponse, error)
	ListUserOrders(ctx context.Context, userID string) (*dto.ListUserOrdersResponse, error)
}

// OrderFlowImpl implements the order business flow
type OrderFlowImpl struct {
	orderRepo  repository.AdOrderRepository
	adRepo     repository.AdRepository
	screenRepo repository.ScreenRepository
	incomeRepo repository.IncomeRepository
	db         *gorm.DB
}

// NewOrderFlow creates a new order flow instance
func NewOrderFlow(
	orderRepo repository.AdOrderRepository,
	adRepo repository.AdRepository,
	screenRepo repository.ScreenRepository,
	incomeRepo repository.IncomeRepository,
	db *gorm.DB,
) OrderFlow {
	return &OrderFlowImpl{
		orderRepo:  orderRepo,
		adRepo:     adRepo,
		screenRepo: screenRepo,
		incomeRepo: incomeRepo,
		db:         db,
	}
}

// CreateAdOrder books a screen for an approved ad. Unverified and
// rejected ads are never bookable.
func (f *OrderFlowImpl) CreateAdOrder(ctx context.Context, req *dto.CreateAdOrderRequest, metadata *ClientMetadata) (*dto.CreateAdOrderResponse, error) {
	userID, err := utils.ParseUUID(req.UserID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
	}
	adID, err := utils.ParseUUID(req.AdID)
	if err != nil {
		return nil, NewBusinessError("INVALID_AD_ID", "Ad id must be a valid UUID", err)
	}
	screenID, err := utils.ParseUUID(req.ScreenID)
	if err != nil {
		return nil, NewBusinessError("INVALID_SCREEN_ID", "Screen id must be a valid UUID", err)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, NewBusinessError("INVALID_TIME_WINDOW", "End time must be after start time", ErrInvalidTimeWindow)
	}
	if req.Price <= 0 {
		return nil, NewBusinessError("INVALID_PRICE", "Price must be positive", ErrInvalidPrice)
	}

	ad, err := f.adRepo.ByID(ctx, adID)
	if err != nil {
		return nil, NewBusinessError("AD_LOOKUP_FAILED", "Failed to lookup ad", err)
	}
	if ad == nil {
		return nil, NewBusinessError("AD_NOT_FOUND", "Ad does not exist", ErrAdNotFound)
	}
	if ad.UserID != userID {
		return nil, NewBusinessError("AD_ACCESS_DENIED", "Ad belongs to another user", ErrAdAccessDenied)
	}
	switch ad.Status {
	case models.AdStatusUnverified:
		return nil, NewBusinessError("AD_UNVERIFIED", "Ad has not been verified yet", ErrAdUnverified)
	case models.AdStatusRejected:
		return nil, NewBusinessError("AD_REJECTED", "Ad has been rejected", ErrAdRejected)
	}

	screen, err := f.screenRepo.ByID(ctx, screenID)
	if err != nil {
		return nil, NewBusinessError("SCREEN_LOOKUP_FAILED", "Failed to lookup screen", err)
	}
	if screen == nil {
		return nil, NewBusinessError("SCREEN_NOT_FOUND", "Screen does not exist", ErrScreenNotFound)
	}

	order := models.AdOrder{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
		Status:    models.OrderStatusPending,
		AdID:      adID,
		ScreenID:  screenID,
	}
	if err := f.orderRepo.Save(ctx, &order); err != nil {
		return nil, NewBusinessError("ORDER_CREATION_FAILED", "Failed to create ad order", err)
	}

	return &dto.CreateAdOrderResponse{
		Message: "Ad order created successfully",
		Order:   ToAdOrderDTO(order),
	}, nil
}

// ApproveAdOrder approves an order and books the income for the screen's
// business. The row lock, the status update and the income insert share
// one transaction; a failed income insert rolls back the status change.
// Re-approving after a reject reuses the income booked the first time,
// keeping the ledger single-entry per order.
func (f *OrderFlowImpl) ApproveAdOrder(ctx context.Context, req *dto.DecideAdOrderRequest, metadata *ClientMetadata) (*dto.DecideAdOrderResponse, error) {
	orderID, businessID, err := f.parseDecision(req)
	if err != nil {
		return nil, err
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		order, err := f.lockOwnedOrder(txCtx, orderID, businessID)
		if err != nil {
			return err
		}

		if !order.CanTransitionTo(models.OrderStatusApproved) {
			return NewBusinessError("ORDER_ALREADY_APPROVED", "Ad order is already approved", ErrOrderAlreadyApproved)
		}

		if err := f.orderRepo.UpdateStatus(txCtx, order.ID, models.OrderStatusApproved); err != nil {
			return err
		}

		existing, err := f.incomeRepo.ByAdOrderID(txCtx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		income := models.Income{
			Amount:     order.Price,
			BusinessID: businessID,
			AdOrderID:  order.ID,
		}
		return f.incomeRepo.Save(txCtx, &income)
	})
	if err != nil {
		if be, ok := err.(*BusinessError); ok {
			return nil, be
		}
		return nil, NewBusinessError("ORDER_APPROVAL_FAILED", "Failed to approve ad order", err)
	}

	return &dto.DecideAdOrderResponse{
		Message: "Ad order approved",
		Status:  models.OrderStatusApproved.String(),
	}, nil
}

// RejectAdOrder rejects an order. The income from a prior approval, if
// any, stays in the ledger; only the order status changes.
func (f *OrderFlowImpl) RejectAdOrder(ctx context.Context, req *dto.DecideAdOrderRequest, metadata *ClientMetadata) (*dto.DecideAdOrderResponse, error) {
	orderID, businessID, err := f.parseDecision(req)
	if err != nil {
		return nil, err
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		order, err := f.lockOwnedOrder(txCtx, orderID, businessID)
		if err != nil {
			return err
		}

		if !order.CanTransitionTo(models.OrderStatusRejected) {
			return NewBusinessError("ORDER_ALREADY_REJECTED", "Ad order is already rejected", ErrOrderAlreadyRejected)
		}

		return f.orderRepo.UpdateStatus(txCtx, order.ID, models.OrderStatusRejected)
	})
	if err != nil {
		if be, ok := err.(*BusinessError); ok {
			return nil, be
		}
		return nil, NewBusinessError("ORDER_REJECTION_FAILED", "Failed to reject ad order", err)
	}

	return &dto.DecideAdOrderResponse{
		Message: "Ad order rejected",
		Status:  models.OrderStatusRejected.String(),
	}, nil
}

// ListBusinessOrders returns the denormalized orders placed against the
// screens of the calling business.
func (f *OrderFlowImpl) ListBusinessOrders(ctx context.Context, businessID string) (*dto.ListBusinessOrdersResponse, error) {
	id, err := utils.ParseUUID(businessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	rows, err := f.orderRepo.BusinessOrders(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ORDER_LIST_FAILED", "Failed to list ad orders", err)
	}

	resp := &dto.ListBusinessOrdersResponse{Orders: make([]dto.BusinessOrderDTO, 0, len(rows))}
	for _, row := range rows {
		resp.Orders = append(resp.Orders, ToBusinessOrderDTO(*row))
	}
	resp.Total = len(resp.Orders)
	return resp, nil
}

// ListUserOrders returns the orders placed by the calling user's ads
func (f *OrderFlowImpl) ListUserOrders(ctx context.Context, userID string) (*dto.ListUserOrdersResponse, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
	}

	ads, err := f.adRepo.ByUserID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("AD_LIST_FAILED", "Failed to list ads", err)
	}

	resp := &dto.ListUserOrdersResponse{Orders: []dto.AdOrderDTO{}}
	for _, ad := range ads {
		adID := ad.ID
		orders, err := f.orderRepo.ByFilter(ctx, models.AdOrderFilter{AdID: &adID}, "created_at DESC", 0, 0)
		if err != nil {
			return nil, NewBusinessError("ORDER_LIST_FAILED", "Failed to list ad orders", err)
		}
		for _, order := range orders {
			resp.Orders = append(resp.Orders, ToAdOrderDTO(*order))
		}
	}
	resp.Total = len(resp.Orders)
	return resp, nil
}

func (f *OrderFlowImpl) parseDecision(req *dto.DecideAdOrderRequest) (uuid.UUID, uuid.UUID, error) {
	orderID, err := utils.ParseUUID(req.OrderID)
	if err != nil {
		return uuid.Nil, uuid.Nil, NewBusinessError("INVALID_ORDER_ID", "Order id must be a valid UUID", err)
	}
	businessID, err := utils.ParseUUID(req.BusinessID)
	if err != nil {
		return uuid.Nil, uuid.Nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}
	return orderID, businessID, nil
}

// lockOwnedOrder fetches the order under a row lock and verifies the
// caller's business owns the screen it was booked on. Must run inside
// WithTransaction; concurrent decisions on the same order serialize on
// the lock.
func (f *OrderFlowImpl) lockOwnedOrder(txCtx context.Context, orderID, businessID uuid.UUID) (*models.AdOrder, error) {
	order, err := f.orderRepo.ByIDForUpdate(txCtx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NewBusinessError("ORDER_NOT_FOUND", "Ad order does not exist", ErrOrderNotFound)
	}

	ownerID, err := f.screenRepo.BusinessIDForScreen(txCtx, order.ScreenID)
	if err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, NewBusinessError("SCREEN_NOT_FOUND", "Screen does not exist", ErrScreenNotFound)
	}
	if ownerID != businessID {
		return nil, NewBusinessError("ORDER_ACCESS_DENIED", "Ad order belongs to another business", ErrOrderAccessDenied)
	}

	return order, nil
}
