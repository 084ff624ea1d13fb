// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uuid.UUID) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for advertiser accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user models.User) error
}

// AdminRepository defines operations for platform admins
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByName(ctx context.Context, name string) (*models.Admin, error)
}

// BusinessRepository defines operations for venue owners
type BusinessRepository interface {
	Repository[models.Business, models.BusinessFilter]
	ByEmail(ctx context.Context, email string) (*models.Business, error)
	SaveWithCategories(ctx context.Context, business *models.Business, categoryIDs []uuid.UUID) error
	UpdateImgURL(ctx context.Context, businessID uuid.UUID, imgURL string) error
}

// CategoryRepository defines operations for advertising categories
type CategoryRepository interface {
	Repository[models.Category, models.CategoryFilter]
	ByName(ctx context.Context, name string) (*models.Category, error)
	All(ctx context.Context) ([]*models.Category, error)
}

// AddressRepository defines operations for business addresses
type AddressRepository interface {
	Repository[models.Address, models.AddressFilter]
	Update(ctx context.Context, address models.Address) error
	All(ctx context.Context) ([]*models.Address, error)
}

// ScreenRepository defines operations for advertising screens
type ScreenRepository interface {
	Repository[models.Screen, models.ScreenFilter]
	Update(ctx context.Context, screen models.Screen) error
	All(ctx context.Context) ([]*models.Screen, error)
	AllWithAddress(ctx context.Context) ([]*models.ScreenWithAddress, error)
	ByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Screen, error)
	BusinessIDForScreen(ctx context.Context, screenID uuid.UUID) (uuid.UUID, error)
}

// AdRepository defines operations for ads
type AdRepository interface {
	Repository[models.Ad, models.AdFilter]
	SaveWithCategories(ctx context.Context, ad *models.Ad, categoryIDs []uuid.UUID) error
	Update(ctx context.Context, ad models.Ad) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AdStatus) error
	ByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Ad, error)
	All(ctx context.Context) ([]*models.Ad, error)
}

// AdOrderRepository defines operations for ad orders
type AdOrderRepository interface {
	Repository[models.AdOrder, models.AdOrderFilter]
	ByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AdOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	BusinessOrders(ctx context.Context, businessID uuid.UUID) ([]*models.AdOrderAllData, error)
}

// IncomeRepository defines operations for business incomes
type IncomeRepository interface {
	Repository[models.Income, models.IncomeFilter]
	ByAdOrderID(ctx context.Context, adOrderID uuid.UUID) (*models.Income, error)
	BusinessIncomes(ctx context.Context, businessID uuid.UUID) ([]*models.IncomeAllData, error)
}

// ImageAssetRepository defines operations for uploaded ad images
type ImageAssetRepository interface {
	Repository[models.ImageAsset, models.ImageAssetFilter]
}
