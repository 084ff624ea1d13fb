package businessflow

import (
	"context"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"gorm.io/gorm"
)

// AdFlow handles the ad lifecycle: creation, updates and admin verification
type AdFlow interface {
	CreateAd(ctx context.Context, req *dto.CreateAdRequest, metadata *ClientMetadata) (*dto.CreateAdResponse, error)
	UpdateAd(ctx context.Context, req *dto.UpdateAdRequest, metadata *ClientMetadata) (*dto.UpdateAdResponse, error)
	ListUserAds(ctx context.Context, userID string) (*dto.ListAdsResponse, error)
	ListAllAds(ctx context.Context) (*dto.ListAdsResponse, error)
	DecideAd(ctx context.Context, req *dto.UpdateAdStatusRequest, metadata *ClientMetadata) (*dto.UpdateAdStatusResponse, error)
}

// AdFlowImpl implements the ad business flow
type AdFlowImpl struct {
	adRepo       repository.AdRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
}

// NewAdFlow creates a new ad flow instance
func NewAdFlow(
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	db *gorm.DB,
) AdFlow {
	return &AdFlowImpl{
		adRepo:       adRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		db:           db,
	}
}

// CreateAd creates a new unverified ad and its category links. The ad row
// and the links commit together or not at all.
func (f *AdFlowImpl) CreateAd(ctx context.Context, req *dto.CreateAdRequest, metadata *ClientMetadata) (*dto.CreateAdResponse, error) {
	userID, err := utils.ParseUUID(req.UserID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
	}

	user, err := f.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User does not exist", ErrUserNotFound)
	}

	categoryIDs, err := utils.ParseUUIDs(req.CategoryIDs)
	if err != nil {
		return nil, NewBusinessError("INVALID_CATEGORY_ID", "Category ids must be valid UUIDs", err)
	}
	for _, categoryID := range categoryIDs {
		category, err := f.categoryRepo.ByID(ctx, categoryID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
		}
		if category == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category does not exist", ErrCategoryNotFound)
		}
	}

	ad := models.Ad{
		Name:   req.Name,
		ImgURL: req.ImgURL,
		Status: models.AdStatusUnverified,
		UserID: userID,
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.adRepo.SaveWithCategories(txCtx, &ad, categoryIDs)
	})
	if err != nil {
		return nil, NewBusinessError("AD_CREATION_FAILED", "Failed to create ad", err)
	}

	return &dto.CreateAdResponse{
		Message: "Ad created successfully",
		Ad:      ToAdDTO(ad),
	}, nil
}

// UpdateAd updates an ad owned by the calling user. Changing the creative
// resets the status to unverified so the admin reviews it again.
func (f *AdFlowImpl) UpdateAd(ctx context.Context, req *dto.UpdateAdRequest, metadata *ClientMetadata) (*dto.UpdateAdResponse, error) {
	adID, err := utils.ParseUUID(req.ID)
	if err != nil {
		return nil, NewBusinessError("INVALID_AD_ID", "Ad id must be a valid UUID", err)
	}
	userID, err := utils.ParseUUID(req.UserID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
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

	changed := false
	if req.Name != nil && *req.Name != ad.Name {
		ad.Name = *req.Name
		changed = true
	}
	if req.ImgURL != nil && *req.ImgURL != ad.ImgURL {
		ad.ImgURL = *req.ImgURL
		changed = true
	}
	if changed {
		ad.Status = models.AdStatusUnverified
	}

	if err := f.adRepo.Update(ctx, *ad); err != nil {
		return nil, NewBusinessError("AD_UPDATE_FAILED", "Failed to update ad", err)
	}

	return &dto.UpdateAdResponse{Message: "Ad updated successfully"}, nil
}

// ListUserAds returns the ads of the calling user
func (f *AdFlowImpl) ListUserAds(ctx context.Context, userID string) (*dto.ListAdsResponse, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
	}

	ads, err := f.adRepo.ByUserID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("AD_LIST_FAILED", "Failed to list ads", err)
	}

	return toListAdsResponse(ads), nil
}

// ListAllAds returns every ad. Admin only.
func (f *AdFlowImpl) ListAllAds(ctx context.Context) (*dto.ListAdsResponse, error) {
	ads, err := f.adRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("AD_LIST_FAILED", "Failed to list ads", err)
	}

	return toListAdsResponse(ads), nil
}

// DecideAd records an admin decision on an unverified ad. Only the
// unverified state accepts a decision; approved and rejected are final.
func (f *AdFlowImpl) DecideAd(ctx context.Context, req *dto.UpdateAdStatusRequest, metadata *ClientMetadata) (*dto.UpdateAdStatusResponse, error) {
	adID, err := utils.ParseUUID(req.ID)
	if err != nil {
		return nil, NewBusinessError("INVALID_AD_ID", "Ad id must be a valid UUID", err)
	}

	newStatus := models.AdStatus(req.Status)
	if !newStatus.Valid() || newStatus == models.AdStatusUnverified {
		return nil, NewBusinessError("INVALID_AD_STATUS", "Status must be approved or rejected", nil)
	}

	ad, err := f.adRepo.ByID(ctx, adID)
	if err != nil {
		return nil, NewBusinessError("AD_LOOKUP_FAILED", "Failed to lookup ad", err)
	}
	if ad == nil {
		return nil, NewBusinessError("AD_NOT_FOUND", "Ad does not exist", ErrAdNotFound)
	}

	if !ad.CanTransitionTo(newStatus) {
		return nil, NewBusinessError("AD_DECISION_NOT_ALLOWED", "Ad has already been decided", ErrAdDecisionNotAllowed)
	}

	if err := f.adRepo.UpdateStatus(ctx, adID, newStatus); err != nil {
		return nil, NewBusinessError("AD_STATUS_UPDATE_FAILED", "Failed to update ad status", err)
	}

	return &dto.UpdateAdStatusResponse{
		Message: "Ad decision recorded",
		Status:  newStatus.String(),
	}, nil
}

func toListAdsResponse(ads []*models.Ad) *dto.ListAdsResponse {
	resp := &dto.ListAdsResponse{Ads: make([]dto.AdDTO, 0, len(ads))}
	for _, ad := range ads {
		resp.Ads = append(resp.Ads, ToAdDTO(*ad))
	}
	resp.Total = len(resp.Ads)
	return resp
}
