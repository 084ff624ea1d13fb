package repository

import (
	"context"

	"github.com/amirphl/Izanagi/models"
	"gorm.io/gorm"
)

// AddressRepositoryImpl implements the AddressRepository interface
type AddressRepositoryImpl struct {
	*BaseRepository[models.Address, models.AddressFilter]
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &AddressRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Address, models.AddressFilter](db),
	}
}

// Update updates an address
func (r *AddressRepositoryImpl) Update(ctx context.Context, address models.Address) error {
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

	err = db.Save(&address).Error
	if err != nil {
		return err
	}

	return nil
}

// All retrieves all addresses
func (r *AddressRepositoryImpl) All(ctx context.Context) ([]*models.Address, error) {
	return r.ByFilter(ctx, models.AddressFilter{}, "name ASC", 0, 0)
}

// ByFilter retrieves addresses based on filter criteria
func (r *AddressRepositoryImpl) ByFilter(ctx context.Context, filter models.AddressFilter, orderBy string, limit, offset int) ([]*models.Address, error) {
	db := r.getDB(ctx)

	var addresses []*models.Address
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

	err := query.Find(&addresses).Error
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

// Count returns the number of addresses matching the filter
func (r *AddressRepositoryImpl) Count(ctx context.Context, filter models.AddressFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Address{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any address matching the filter exists
func (r *AddressRepositoryImpl) Exists(ctx context.Context, filter models.AddressFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AddressRepositoryImpl) applyFilter(db *gorm.DB, filter models.AddressFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.BusinessID != nil {
		db = db.Where("business_id = ?", *filter.BusinessID)
	}

	return db
}
