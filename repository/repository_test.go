package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/amirphl/Izanagi/models"
	testingutil "github.com/amirphl/Izanagi/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoEnv(t *testing.T) (*testingutil.TestDB, *testingutil.TestFixtures, func()) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	cleanup := func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("teardown: %v", err)
		}
	}
	return testDB, testingutil.NewTestFixtures(testDB), cleanup
}

func TestScreenRepository(t *testing.T) {
	testDB, fixtures, cleanup := setupRepoEnv(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewScreenRepository(testDB.DB)

	food, err := fixtures.CreateTestCategory("food")
	require.NoError(t, err)
	fashion, err := fixtures.CreateTestCategory("fashion")
	require.NoError(t, err)

	foodBusiness, err := fixtures.CreateTestBusiness(food)
	require.NoError(t, err)
	fashionBusiness, err := fixtures.CreateTestBusiness(fashion)
	require.NoError(t, err)

	foodAddress, err := fixtures.CreateTestAddress(foodBusiness)
	require.NoError(t, err)
	fashionAddress, err := fixtures.CreateTestAddress(fashionBusiness)
	require.NoError(t, err)

	foodScreen, err := fixtures.CreateTestScreen(foodBusiness, foodAddress, 100, 1000)
	require.NoError(t, err)
	_, err = fixtures.CreateTestScreen(fashionBusiness, fashionAddress, 200, 500)
	require.NoError(t, err)

	t.Run("ByCategoryIDsFiltersByBusinessCategory", func(t *testing.T) {
		screens, err := repo.ByCategoryIDs(ctx, []uuid.UUID{food.ID})
		require.NoError(t, err)
		require.Len(t, screens, 1)
		assert.Equal(t, foodScreen.ID, screens[0].ID)
	})

	t.Run("ByCategoryIDsUnionsCategories", func(t *testing.T) {
		screens, err := repo.ByCategoryIDs(ctx, []uuid.UUID{food.ID, fashion.ID})
		require.NoError(t, err)
		assert.Len(t, screens, 2)
	})

	t.Run("BusinessIDForScreen", func(t *testing.T) {
		ownerID, err := repo.BusinessIDForScreen(ctx, foodScreen.ID)
		require.NoError(t, err)
		assert.Equal(t, foodBusiness.ID, ownerID)
	})

	t.Run("BusinessIDForMissingScreenIsNil", func(t *testing.T) {
		ownerID, err := repo.BusinessIDForScreen(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, ownerID)
	})

	t.Run("ByFilterMinTraffic", func(t *testing.T) {
		minTraffic := 800
		screens, err := repo.ByFilter(ctx, models.ScreenFilter{MinTraffic: &minTraffic}, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, screens, 1)
		assert.Equal(t, foodScreen.ID, screens[0].ID)
	})

	t.Run("AllWithAddressJoinsAddressName", func(t *testing.T) {
		rows, err := repo.AllWithAddress(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.NotEmpty(t, row.AddressName)
		}
	})
}

func TestAdOrderRepository(t *testing.T) {
	testDB, fixtures, cleanup := setupRepoEnv(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewAdOrderRepository(testDB.DB)

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)
	screen, err := fixtures.CreateTestScreen(business, address, 50, 300)
	require.NoError(t, err)
	ad, err := fixtures.CreateTestAd(user, models.AdStatusApproved)
	require.NoError(t, err)
	order, err := fixtures.CreateTestOrder(ad, screen, models.OrderStatusPending)
	require.NoError(t, err)

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, order.ID, models.OrderStatusApproved))

		loaded, err := repo.ByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, models.OrderStatusApproved, loaded.Status)
	})

	t.Run("ByIDForUpdateInsideTransaction", func(t *testing.T) {
		err := WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
			locked, err := repo.ByIDForUpdate(txCtx, order.ID)
			require.NoError(t, err)
			require.NotNil(t, locked)
			assert.Equal(t, order.ID, locked.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("ByIDForUpdateMissingOrderIsNil", func(t *testing.T) {
		err := WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
			locked, err := repo.ByIDForUpdate(txCtx, uuid.New())
			require.NoError(t, err)
			assert.Nil(t, locked)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("BusinessOrdersJoinsAdClientAndScreen", func(t *testing.T) {
		rows, err := repo.BusinessOrders(ctx, business.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, order.ID, rows[0].OrderID)
		assert.Equal(t, ad.ID, rows[0].Ad.ID)
		assert.Equal(t, user.ID, rows[0].Client.ID)
		assert.Equal(t, screen.ID, rows[0].Screen.ID)
		assert.NotEmpty(t, rows[0].AddressName)
	})
}

func TestIncomeRepository(t *testing.T) {
	testDB, fixtures, cleanup := setupRepoEnv(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewIncomeRepository(testDB.DB)

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)
	screen, err := fixtures.CreateTestScreen(business, address, 75, 400)
	require.NoError(t, err)
	ad, err := fixtures.CreateTestAd(user, models.AdStatusApproved)
	require.NoError(t, err)
	order, err := fixtures.CreateTestOrder(ad, screen, models.OrderStatusApproved)
	require.NoError(t, err)

	income := &models.Income{
		Amount:     order.Price,
		BusinessID: business.ID,
		AdOrderID:  order.ID,
	}
	require.NoError(t, repo.Save(ctx, income))

	t.Run("ByAdOrderID", func(t *testing.T) {
		loaded, err := repo.ByAdOrderID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, income.ID, loaded.ID)
	})

	t.Run("DuplicateAdOrderIsRejected", func(t *testing.T) {
		dup := &models.Income{
			Amount:     order.Price,
			BusinessID: business.ID,
			AdOrderID:  order.ID,
		}
		assert.Error(t, repo.Save(ctx, dup))
	})

	t.Run("BusinessIncomesJoinsClientAndAd", func(t *testing.T) {
		rows, err := repo.BusinessIncomes(ctx, business.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, order.Price, rows[0].Price)
		assert.Equal(t, user.ID, rows[0].Client.ID)
		assert.Equal(t, ad.ID, rows[0].Ad.ID)
	})
}

func TestWithTransactionRollback(t *testing.T) {
	testDB, _, cleanup := setupRepoEnv(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewCategoryRepository(testDB.DB)

	boom := errors.New("boom")
	err := WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, &models.Category{Name: "doomed"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	loaded, err := repo.ByName(ctx, "doomed")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
