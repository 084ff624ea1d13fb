// Package testing provides test utilities and database setup for testing the marketplace
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Izanagi/models"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates an advertiser account with a bcrypt-hashed password
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	user := &models.User{
		Name:         "John Doe",
		Email:        fmt.Sprintf("john.doe.%s@example.com", randomDigits),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestBusiness creates a screen-owner account linked to the given categories
func (tf *TestFixtures) CreateTestBusiness(categories ...*models.Category) (*models.Business, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	business := &models.Business{
		Name:         "Test Venue Ltd",
		Email:        fmt.Sprintf("venue.%s@example.com", randomDigits),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(business).Error; err != nil {
		return nil, fmt.Errorf("failed to create test business: %w", err)
	}

	for _, category := range categories {
		link := &models.BusinessCategory{
			BusinessID: business.ID,
			CategoryID: category.ID,
		}
		if err := tf.DB.DB.Create(link).Error; err != nil {
			return nil, fmt.Errorf("failed to link test business to category: %w", err)
		}
	}

	return business, nil
}

// CreateTestAdmin creates a platform operator account
func (tf *TestFixtures) CreateTestAdmin() (*models.Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("AdminPass123!"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Name:         fmt.Sprintf("admin_%d", rand.Intn(1000000)),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}

	return admin, nil
}

// CreateTestCategory creates an advertising category. An empty name gets
// a random unique one.
func (tf *TestFixtures) CreateTestCategory(name string) (*models.Category, error) {
	if name == "" {
		name = fmt.Sprintf("category_%d", rand.Intn(1000000))
	}

	category := &models.Category{Name: name}

	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}

	return category, nil
}

// CreateTestAddress creates an address for the given business
func (tf *TestFixtures) CreateTestAddress(business *models.Business) (*models.Address, error) {
	address := &models.Address{
		Name:       "123 Test Street, Downtown",
		BusinessID: business.ID,
	}

	if err := tf.DB.DB.Create(address).Error; err != nil {
		return nil, fmt.Errorf("failed to create test address: %w", err)
	}

	return address, nil
}

// CreateTestScreen creates a screen with the given price and traffic
func (tf *TestFixtures) CreateTestScreen(business *models.Business, address *models.Address, price float64, traffic int) (*models.Screen, error) {
	screen := &models.Screen{
		Name:            fmt.Sprintf("screen_%d", rand.Intn(1000000)),
		PricePerTime:    price,
		Characteristics: "55 inch, 4K, indoor",
		Traffic:         traffic,
		BusinessID:      business.ID,
		AddressID:       address.ID,
	}

	if err := tf.DB.DB.Create(screen).Error; err != nil {
		return nil, fmt.Errorf("failed to create test screen: %w", err)
	}

	return screen, nil
}

// CreateTestAd creates an ad in the given status linked to the given categories
func (tf *TestFixtures) CreateTestAd(user *models.User, status models.AdStatus, categories ...*models.Category) (*models.Ad, error) {
	ad := &models.Ad{
		Name:   fmt.Sprintf("ad_%d", rand.Intn(1000000)),
		ImgURL: "https://cdn.example.com/creative.jpg",
		Status: status,
		UserID: user.ID,
	}

	if err := tf.DB.DB.Create(ad).Error; err != nil {
		return nil, fmt.Errorf("failed to create test ad: %w", err)
	}

	for _, category := range categories {
		link := &models.AdCategory{
			AdID:       ad.ID,
			CategoryID: category.ID,
		}
		if err := tf.DB.DB.Create(link).Error; err != nil {
			return nil, fmt.Errorf("failed to link test ad to category: %w", err)
		}
	}

	return ad, nil
}

// CreateTestOrder creates an ad order in the given status for a one-hour window
func (tf *TestFixtures) CreateTestOrder(ad *models.Ad, screen *models.Screen, status models.OrderStatus) (*models.AdOrder, error) {
	start := time.Now().UTC().Add(24 * time.Hour)

	order := &models.AdOrder{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Price:     screen.PricePerTime,
		Status:    status,
		AdID:      ad.ID,
		ScreenID:  screen.ID,
	}

	if err := tf.DB.DB.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create test order: %w", err)
	}

	return order, nil
}
