package repository

import (
	"context"

	"github.com/amirphl/Izanagi/models"
	"gorm.io/gorm"
)

// ImageAssetRepositoryImpl implements the ImageAssetRepository interface
type ImageAssetRepositoryImpl struct {
	*BaseRepository[models.ImageAsset, models.ImageAssetFilter]
}

// NewImageAssetRepository creates a new image asset repository
func NewImageAssetRepository(db *gorm.DB) ImageAssetRepository {
	return &ImageAssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ImageAsset, models.ImageAssetFilter](db),
	}
}

// ByFilter retrieves image assets based on filter criteria
func (r *ImageAssetRepositoryImpl) ByFilter(ctx context.Context, filter models.ImageAssetFilter, orderBy string, limit, offset int) ([]*models.ImageAsset, error) {
	db := r.getDB(ctx)

	var assets []*models.ImageAsset
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}

// Count returns the number of image assets matching the filter
func (r *ImageAssetRepositoryImpl) Count(ctx context.Context, filter models.ImageAssetFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.ImageAsset{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any image asset matching the filter exists
func (r *ImageAssetRepositoryImpl) Exists(ctx context.Context, filter models.ImageAssetFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ImageAssetRepositoryImpl) applyFilter(db *gorm.DB, filter models.ImageAssetFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.OwnerUserID != nil {
		db = db.Where("owner_user_id = ?", *filter.OwnerUserID)
	}

	return db
}
