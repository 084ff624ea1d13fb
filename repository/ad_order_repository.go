package repository

import (
	"context"
	"errors"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdOrderRepositoryImpl implements the AdOrderRepository interface
type AdOrderRepositoryImpl struct {
	*BaseRepository[models.AdOrder, models.AdOrderFilter]
}

// NewAdOrderRepository creates a new ad order repository
func NewAdOrderRepository(db *gorm.DB) AdOrderRepository {
	return &AdOrderRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdOrder, models.AdOrderFilter](db),
	}
}

// ByIDForUpdate retrieves an order holding a row lock until the enclosing
// transaction ends. Callers must run inside WithTransaction; the lock is
// what keeps concurrent approvals of the same order serialized.
func (r *AdOrderRepositoryImpl) ByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AdOrder, error) {
	db := r.getDB(ctx)

	var order models.AdOrder
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

// UpdateStatus sets the lifecycle status of an order
func (r *AdOrderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
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

	result := db.Model(&models.AdOrder{}).Where("id = ?", id).Update("status", status)
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

// BusinessOrders retrieves every order placed against the screens of the
// given business, denormalized with the ad, the ordering client, the
// screen and the screen's address.
func (r *AdOrderRepositoryImpl) BusinessOrders(ctx context.Context, businessID uuid.UUID) ([]*models.AdOrderAllData, error) {
	db := r.getDB(ctx)

	var orders []*models.AdOrder
	err := db.
		Joins("JOIN screens ON screens.id = ad_orders.screen_id").
		Where("screens.business_id = ?", businessID).
		Preload("Ad").
		Preload("Ad.User").
		Preload("Screen").
		Preload("Screen.Address").
		Order("ad_orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*models.AdOrderAllData, 0, len(orders))
	for _, order := range orders {
		if order.Ad == nil || order.Ad.User == nil || order.Screen == nil || order.Screen.Address == nil {
			continue
		}

		row := &models.AdOrderAllData{
			OrderID:     order.ID,
			StartTime:   order.StartTime,
			EndTime:     order.EndTime,
			Price:       order.Price,
			Status:      order.Status,
			AddressName: order.Screen.Address.Name,
			Ad:          *order.Ad,
			Client:      *order.Ad.User,
			Screen:      *order.Screen,
		}
		row.Ad.User = nil
		row.Screen.Address = nil
		rows = append(rows, row)
	}

	return rows, nil
}

// ByFilter retrieves ad orders based on filter criteria
func (r *AdOrderRepositoryImpl) ByFilter(ctx context.Context, filter models.AdOrderFilter, orderBy string, limit, offset int) ([]*models.AdOrder, error) {
	db := r.getDB(ctx)

	var orders []*models.AdOrder
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

	err := query.Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// Count returns the number of ad orders matching the filter
func (r *AdOrderRepositoryImpl) Count(ctx context.Context, filter models.AdOrderFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdOrder{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any ad order matching the filter exists
func (r *AdOrderRepositoryImpl) Exists(ctx context.Context, filter models.AdOrderFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AdOrderRepositoryImpl) applyFilter(db *gorm.DB, filter models.AdOrderFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.AdID != nil {
		db = db.Where("ad_id = ?", *filter.AdID)
	}
	if filter.ScreenID != nil {
		db = db.Where("screen_id = ?", *filter.ScreenID)
	}
	if filter.StartAfter != nil {
		db = db.Where("start_time >= ?", *filter.StartAfter)
	}
	if filter.EndBefore != nil {
		db = db.Where("end_time <= ?", *filter.EndBefore)
	}
	if filter.MinPrice != nil {
		db = db.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		db = db.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at > ?", *filter.CreatedAfter)
	}

	return db
}
