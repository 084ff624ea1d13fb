package repository

import (
	"context"
	"errors"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncomeRepositoryImpl implements the IncomeRepository interface
type IncomeRepositoryImpl struct {
	*BaseRepository[models.Income, models.IncomeFilter]
}

// NewIncomeRepository creates a new income repository
func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &IncomeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Income, models.IncomeFilter](db),
	}
}

// ByAdOrderID retrieves the income booked for an order, if any
func (r *IncomeRepositoryImpl) ByAdOrderID(ctx context.Context, adOrderID uuid.UUID) (*models.Income, error) {
	db := r.getDB(ctx)

	var income models.Income
	err := db.First(&income, "ad_order_id = ?", adOrderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &income, nil
}

// BusinessIncomes retrieves the income ledger of a business, each entry
// denormalized with the paying client and the ad that generated it.
func (r *IncomeRepositoryImpl) BusinessIncomes(ctx context.Context, businessID uuid.UUID) ([]*models.IncomeAllData, error) {
	db := r.getDB(ctx)

	var incomes []*models.Income
	err := db.
		Where("business_id = ?", businessID).
		Preload("AdOrder").
		Preload("AdOrder.Ad").
		Preload("AdOrder.Ad.User").
		Order("created_at DESC").
		Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*models.IncomeAllData, 0, len(incomes))
	for _, income := range incomes {
		if income.AdOrder == nil || income.AdOrder.Ad == nil || income.AdOrder.Ad.User == nil {
			continue
		}

		row := &models.IncomeAllData{
			Price:  income.Amount,
			Client: *income.AdOrder.Ad.User,
			Ad:     *income.AdOrder.Ad,
		}
		row.Ad.User = nil
		rows = append(rows, row)
	}

	return rows, nil
}

// ByFilter retrieves incomes based on filter criteria
func (r *IncomeRepositoryImpl) ByFilter(ctx context.Context, filter models.IncomeFilter, orderBy string, limit, offset int) ([]*models.Income, error) {
	db := r.getDB(ctx)

	var incomes []*models.Income
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

	err := query.Find(&incomes).Error
	if err != nil {
		return nil, err
	}

	return incomes, nil
}

// Count returns the number of incomes matching the filter
func (r *IncomeRepositoryImpl) Count(ctx context.Context, filter models.IncomeFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Income{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any income matching the filter exists
func (r *IncomeRepositoryImpl) Exists(ctx context.Context, filter models.IncomeFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *IncomeRepositoryImpl) applyFilter(db *gorm.DB, filter models.IncomeFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.BusinessID != nil {
		db = db.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.AdOrderID != nil {
		db = db.Where("ad_order_id = ?", *filter.AdOrderID)
	}
	if filter.MinAmount != nil {
		db = db.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		db = db.Where("amount <= ?", *filter.MaxAmount)
	}

	return db
}
