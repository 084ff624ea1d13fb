package repository

import (
	"context"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdRepositoryImpl implements the AdRepository interface
type AdRepositoryImpl struct {
	*BaseRepository[models.Ad, models.AdFilter]
}

// NewAdRepository creates a new ad repository
func NewAdRepository(db *gorm.DB) AdRepository {
	return &AdRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Ad, models.AdFilter](db),
	}
}

// SaveWithCategories creates the ad and its category links in a single
// transaction so a failed link insert never leaves an uncategorized ad.
func (r *AdRepositoryImpl) SaveWithCategories(ctx context.Context, ad *models.Ad, categoryIDs []uuid.UUID) error {
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

	err = db.Create(ad).Error
	if err != nil {
		return err
	}

	if len(categoryIDs) > 0 {
		links := make([]models.AdCategory, 0, len(categoryIDs))
		for _, categoryID := range categoryIDs {
			links = append(links, models.AdCategory{
				AdID:       ad.ID,
				CategoryID: categoryID,
			})
		}
		err = db.Create(&links).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Update updates an ad
func (r *AdRepositoryImpl) Update(ctx context.Context, ad models.Ad) error {
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

	err = db.Save(&ad).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus sets the verification status of an ad
func (r *AdRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AdStatus) error {
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

	result := db.Model(&models.Ad{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		err = result.Error
		return err
	}
	if result.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
		return err
	}

	return nil
}

// ByUserID retrieves all ads owned by the given user
func (r *AdRepositoryImpl) ByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Ad, error) {
	return r.ByFilter(ctx, models.AdFilter{UserID: &userID}, "created_at DESC", 0, 0)
}

// All retrieves all ads, newest first
func (r *AdRepositoryImpl) All(ctx context.Context) ([]*models.Ad, error) {
	return r.ByFilter(ctx, models.AdFilter{}, "created_at DESC", 0, 0)
}

// ByFilter retrieves ads based on filter criteria
func (r *AdRepositoryImpl) ByFilter(ctx context.Context, filter models.AdFilter, orderBy string, limit, offset int) ([]*models.Ad, error) {
	db := r.getDB(ctx)

	var ads []*models.Ad
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

	err := query.Find(&ads).Error
	if err != nil {
		return nil, err
	}

	return ads, nil
}

// Count returns the number of ads matching the filter
func (r *AdRepositoryImpl) Count(ctx context.Context, filter models.AdFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Ad{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any ad matching the filter exists
func (r *AdRepositoryImpl) Exists(ctx context.Context, filter models.AdFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	return db
}
