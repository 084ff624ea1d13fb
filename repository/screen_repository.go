package repository

import (
	"context"
	"errors"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScreenRepositoryImpl implements the ScreenRepository interface
type ScreenRepositoryImpl struct {
	*BaseRepository[models.Screen, models.ScreenFilter]
}

// NewScreenRepository creates a new screen repository
func NewScreenRepository(db *gorm.DB) ScreenRepository {
	return &ScreenRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Screen, models.ScreenFilter](db),
	}
}

// Update updates a screen
func (r *ScreenRepositoryImpl) Update(ctx context.Context, screen models.Screen) error {
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

	err = db.Save(&screen).Error
	if err != nil {
		return err
	}

	return nil
}

// All retrieves all screens
func (r *ScreenRepositoryImpl) All(ctx context.Context) ([]*models.Screen, error) {
	return r.ByFilter(ctx, models.ScreenFilter{}, "name ASC", 0, 0)
}

// AllWithAddress retrieves all screens joined with their address name
// for browsing endpoints.
func (r *ScreenRepositoryImpl) AllWithAddress(ctx context.Context) ([]*models.ScreenWithAddress, error) {
	db := r.getDB(ctx)

	var rows []*models.ScreenWithAddress
	err := db.Table("screens").
		Select("screens.id, screens.name, screens.price_per_time, screens.characteristics, screens.traffic, addresses.name AS address_name, screens.business_id").
		Joins("JOIN addresses ON addresses.id = screens.address_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ByCategoryIDs retrieves candidate screens whose owning business is
// linked to at least one of the given categories. This is the
// pre-filter feeding budget allocation; ranking happens in the flow.
func (r *ScreenRepositoryImpl) ByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Screen, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var screens []*models.Screen
	err := db.
		Distinct("screens.*").
		Joins("JOIN business_categories ON business_categories.business_id = screens.business_id").
		Where("business_categories.category_id IN ?", categoryIDs).
		Order("screens.id").
		Find(&screens).Error
	if err != nil {
		return nil, err
	}

	return screens, nil
}

// BusinessIDForScreen resolves the owning business of a screen
func (r *ScreenRepositoryImpl) BusinessIDForScreen(ctx context.Context, screenID uuid.UUID) (uuid.UUID, error) {
	db := r.getDB(ctx)

	var screen models.Screen
	err := db.Select("id", "business_id").First(&screen, "id = ?", screenID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}

	return screen.BusinessID, nil
}

// ByFilter retrieves screens based on filter criteria
func (r *ScreenRepositoryImpl) ByFilter(ctx context.Context, filter models.ScreenFilter, orderBy string, limit, offset int) ([]*models.Screen, error) {
	db := r.getDB(ctx)

	var screens []*models.Screen
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

	err := query.Find(&screens).Error
	if err != nil {
		return nil, err
	}

	return screens, nil
}

// Count returns the number of screens matching the filter
func (r *ScreenRepositoryImpl) Count(ctx context.Context, filter models.ScreenFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Screen{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any screen matching the filter exists
func (r *ScreenRepositoryImpl) Exists(ctx context.Context, filter models.ScreenFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ScreenRepositoryImpl) applyFilter(db *gorm.DB, filter models.ScreenFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.BusinessID != nil {
		db = db.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.AddressID != nil {
		db = db.Where("address_id = ?", *filter.AddressID)
	}
	if filter.MinTraffic != nil {
		db = db.Where("traffic >= ?", *filter.MinTraffic)
	}
	if filter.MaxPrice != nil {
		db = db.Where("price_per_time <= ?", *filter.MaxPrice)
	}

	return db
}
