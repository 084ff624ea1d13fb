package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ScreenFlow handles screen inventory and budget allocation
type ScreenFlow interface {
	CreateScreen(ctx context.Context, req *dto.CreateScreenRequest, metadata *ClientMetadata) (*dto.CreateScreenResponse, error)
	UpdateScreen(ctx context.Context, req *dto.UpdateScreenRequest, metadata *ClientMetadata) (*dto.UpdateScreenResponse, error)
	ListScreens(ctx context.Context) (*dto.ListScreensResponse, error)
	ListBusinessScreens(ctx context.Context, businessID string) (*dto.ListScreensResponse, error)
	FindOptimalScreens(ctx context.Context, req *dto.OptimalScreensRequest, metadata *ClientMetadata) (*dto.OptimalScreensResponse, error)
}

// ScreenFlowImpl implements the screen business flow
type ScreenFlowImpl struct {
	screenRepo   repository.ScreenRepository
	addressRepo  repository.AddressRepository
	businessRepo repository.BusinessRepository
	rc           *redis.Client
	cachePrefix  string
}

// NewScreenFlow creates a new screen flow instance
func NewScreenFlow(
	screenRepo repository.ScreenRepository,
	addressRepo repository.AddressRepository,
	businessRepo repository.BusinessRepository,
	rc *redis.Client,
	cachePrefix string,
) ScreenFlow {
	return &ScreenFlowImpl{
		screenRepo:   screenRepo,
		addressRepo:  addressRepo,
		businessRepo: businessRepo,
		rc:           rc,
		cachePrefix:  cachePrefix,
	}
}

// CreateScreen registers a new screen for the calling business
func (f *ScreenFlowImpl) CreateScreen(ctx context.Context, req *dto.CreateScreenRequest, metadata *ClientMetadata) (*dto.CreateScreenResponse, error) {
	businessID, err := utils.ParseUUID(req.BusinessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}
	addressID, err := utils.ParseUUID(req.AddressID)
	if err != nil {
		return nil, NewBusinessError("INVALID_ADDRESS_ID", "Address id must be a valid UUID", err)
	}

	if req.PricePerTime <= 0 {
		return nil, NewBusinessError("INVALID_PRICE", "Price must be positive", ErrInvalidPrice)
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

	screen := models.Screen{
		Name:            req.Name,
		PricePerTime:    req.PricePerTime,
		Characteristics: req.Characteristics,
		Traffic:         req.Traffic,
		BusinessID:      businessID,
		AddressID:       addressID,
	}
	if err := f.screenRepo.Save(ctx, &screen); err != nil {
		return nil, NewBusinessError("SCREEN_CREATION_FAILED", "Failed to create screen", err)
	}

	f.invalidateCandidateCache(ctx)

	return &dto.CreateScreenResponse{
		Message: "Screen created successfully",
		Screen:  ToScreenDTO(screen),
	}, nil
}

// UpdateScreen updates a screen owned by the calling business
func (f *ScreenFlowImpl) UpdateScreen(ctx context.Context, req *dto.UpdateScreenRequest, metadata *ClientMetadata) (*dto.UpdateScreenResponse, error) {
	screenID, err := utils.ParseUUID(req.ID)
	if err != nil {
		return nil, NewBusinessError("INVALID_SCREEN_ID", "Screen id must be a valid UUID", err)
	}
	businessID, err := utils.ParseUUID(req.BusinessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	screen, err := f.screenRepo.ByID(ctx, screenID)
	if err != nil {
		return nil, NewBusinessError("SCREEN_LOOKUP_FAILED", "Failed to lookup screen", err)
	}
	if screen == nil {
		return nil, NewBusinessError("SCREEN_NOT_FOUND", "Screen does not exist", ErrScreenNotFound)
	}
	if screen.BusinessID != businessID {
		return nil, NewBusinessError("SCREEN_ACCESS_DENIED", "Screen belongs to another business", ErrScreenAccessDenied)
	}

	if req.Name != nil {
		screen.Name = *req.Name
	}
	if req.PricePerTime != nil {
		if *req.PricePerTime <= 0 {
			return nil, NewBusinessError("INVALID_PRICE", "Price must be positive", ErrInvalidPrice)
		}
		screen.PricePerTime = *req.PricePerTime
	}
	if req.Characteristics != nil {
		screen.Characteristics = *req.Characteristics
	}
	if req.Traffic != nil {
		screen.Traffic = *req.Traffic
	}
	if req.AddressID != nil {
		addressID, err := utils.ParseUUID(*req.AddressID)
		if err != nil {
			return nil, NewBusinessError("INVALID_ADDRESS_ID", "Address id must be a valid UUID", err)
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
		screen.AddressID = addressID
	}

	if err := f.screenRepo.Update(ctx, *screen); err != nil {
		return nil, NewBusinessError("SCREEN_UPDATE_FAILED", "Failed to update screen", err)
	}

	f.invalidateCandidateCache(ctx)

	return &dto.UpdateScreenResponse{Message: "Screen updated successfully"}, nil
}

// ListScreens returns every screen joined with its address name
func (f *ScreenFlowImpl) ListScreens(ctx context.Context) (*dto.ListScreensResponse, error) {
	rows, err := f.screenRepo.AllWithAddress(ctx)
	if err != nil {
		return nil, NewBusinessError("SCREEN_LIST_FAILED", "Failed to list screens", err)
	}

	resp := &dto.ListScreensResponse{Screens: make([]dto.ScreenDTO, 0, len(rows))}
	for _, row := range rows {
		resp.Screens = append(resp.Screens, ToScreenWithAddressDTO(*row))
	}
	resp.Total = len(resp.Screens)
	return resp, nil
}

// ListBusinessScreens returns the screens of the calling business
func (f *ScreenFlowImpl) ListBusinessScreens(ctx context.Context, businessID string) (*dto.ListScreensResponse, error) {
	id, err := utils.ParseUUID(businessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	screens, err := f.screenRepo.ByFilter(ctx, models.ScreenFilter{BusinessID: &id}, "name ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("SCREEN_LIST_FAILED", "Failed to list screens", err)
	}

	resp := &dto.ListScreensResponse{Screens: make([]dto.ScreenDTO, 0, len(screens))}
	for _, screen := range screens {
		resp.Screens = append(resp.Screens, ToScreenDTO(*screen))
	}
	resp.Total = len(resp.Screens)
	return resp, nil
}

// FindOptimalScreens returns the screens an advertiser should buy for a
// budget. Candidates are pre-filtered by the desired categories in the
// database; ranking and selection happen in SelectOptimalScreens.
func (f *ScreenFlowImpl) FindOptimalScreens(ctx context.Context, req *dto.OptimalScreensRequest, metadata *ClientMetadata) (*dto.OptimalScreensResponse, error) {
	if req.Budget <= 0 {
		return nil, NewBusinessError("INVALID_BUDGET", "Budget must be positive", ErrInvalidBudget)
	}
	if len(req.CategoryIDs) == 0 {
		return nil, NewBusinessError("NO_CATEGORY_PROVIDED", "At least one category is required", ErrNoCategoryProvided)
	}

	categoryIDs, err := utils.ParseUUIDs(req.CategoryIDs)
	if err != nil {
		return nil, NewBusinessError("INVALID_CATEGORY_ID", "Category ids must be valid UUIDs", err)
	}

	candidates, err := f.candidateScreens(ctx, categoryIDs)
	if err != nil {
		return nil, NewBusinessError("CANDIDATE_LOOKUP_FAILED", "Failed to load candidate screens", err)
	}

	allocation := SelectOptimalScreens(candidates, req.Budget)

	resp := &dto.OptimalScreensResponse{
		Screens:         make([]dto.ScreenDTO, 0, len(allocation.Screens)),
		TotalCost:       allocation.TotalCost,
		TotalTraffic:    allocation.TotalTraffic,
		RemainingBudget: allocation.RemainingBudget,
	}
	for _, screen := range allocation.Screens {
		resp.Screens = append(resp.Screens, ToScreenDTO(*screen))
	}
	return resp, nil
}

// candidateScreens loads category-filtered screens, serving from the
// redis cache when possible. Cache staleness is bounded by the TTL and
// by invalidation on screen writes.
func (f *ScreenFlowImpl) candidateScreens(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Screen, error) {
	key := f.candidateCacheKey(categoryIDs)

	if f.rc != nil {
		if cached, err := f.rc.Get(ctx, key).Result(); err == nil {
			var screens []*models.Screen
			if err := json.Unmarshal([]byte(cached), &screens); err == nil {
				return screens, nil
			}
		}
	}

	screens, err := f.screenRepo.ByCategoryIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	if f.rc != nil {
		if payload, err := json.Marshal(screens); err == nil {
			_ = f.rc.Set(ctx, key, payload, utils.CandidateScreensCacheTTL).Err()
		}
	}

	return screens, nil
}

// candidateCacheKey is order-independent over the category set
func (f *ScreenFlowImpl) candidateCacheKey(categoryIDs []uuid.UUID) string {
	ids := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return fmt.Sprintf("%scandidates:%s", f.cachePrefix, strings.Join(ids, ","))
}

func (f *ScreenFlowImpl) invalidateCandidateCache(ctx context.Context) {
	if f.rc == nil {
		return
	}

	iter := f.rc.Scan(ctx, 0, f.cachePrefix+"candidates:*", 100).Iterator()
	for iter.Next(ctx) {
		_ = f.rc.Del(ctx, iter.Val()).Err()
	}
}
