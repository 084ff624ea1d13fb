package repository

import (
	"context"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessRepositoryImpl implements the BusinessRepository interface
type BusinessRepositoryImpl struct {
	*BaseRepository[models.Business, models.BusinessFilter]
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &BusinessRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Business, models.BusinessFilter](db),
	}
}

// ByEmail retrieves a business by email
func (r *BusinessRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Business, error) {
	filter := models.BusinessFilter{Email: &email}
	businesses, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, nil
	}
	return businesses[0], nil
}

// SaveWithCategories inserts a business and its category linkage rows in
// one atomic unit.
func (r *BusinessRepositoryImpl) SaveWithCategories(ctx context.Context, business *models.Business, categoryIDs []uuid.UUID) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	if err = db.Create(business).Error; err != nil {
		return err
	}

	if len(categoryIDs) > 0 {
		links := make([]models.BusinessCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, models.BusinessCategory{
				BusinessID: business.ID,
				CategoryID: categoryID,
			})
		}
		if err = db.Create(&links).Error; err != nil {
			return err
		}
	}

	return nil
}

// UpdateImgURL updates only the image URL of a business
func (r *BusinessRepositoryImpl) UpdateImgURL(ctx context.Context, businessID uuid.UUID, imgURL string) error {
	db := r.getDB(ctx)
	return db.Model(&models.Business{}).
		Where("id = ?", businessID).
		Update("img_url", imgURL).Error
}

// ByFilter retrieves businesses based on filter criteria
func (r *BusinessRepositoryImpl) ByFilter(ctx context.Context, filter models.BusinessFilter, orderBy string, limit, offset int) ([]*models.Business, error) {
	db := r.getDB(ctx)

	var businesses []*models.Business
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

	query = query.Preload("Categories")

	err := query.Find(&businesses).Error
	if err != nil {
		return nil, err
	}

	return businesses, nil
}

// Count returns the number of businesses matching the filter
func (r *BusinessRepositoryImpl) Count(ctx context.Context, filter models.BusinessFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Business{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any business matching the filter exists
func (r *BusinessRepositoryImpl) Exists(ctx context.Context, filter models.BusinessFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *BusinessRepositoryImpl) applyFilter(db *gorm.DB, filter models.BusinessFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.CategoryID != nil {
		db = db.Joins("JOIN business_categories ON business_categories.business_id = businesses.id").
			Where("business_categories.category_id = ?", *filter.CategoryID)
	}

	return db
}
