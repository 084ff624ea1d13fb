package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	testingutil "github.com/amirphl/Izanagi/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScreenFlowEnv(t *testing.T) (ScreenFlow, *testingutil.TestFixtures, func()) {
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

	// No redis in tests; the flow falls back to the database.
	flow := NewScreenFlow(
		repository.NewScreenRepository(testDB.DB),
		repository.NewAddressRepository(testDB.DB),
		repository.NewBusinessRepository(testDB.DB),
		nil,
		"izanagi:",
	)

	return flow, testingutil.NewTestFixtures(testDB), cleanup
}

func TestFindOptimalScreens(t *testing.T) {
	flow, fixtures, cleanup := setupScreenFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

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

	// Densities: dense=20, sparse=5, offCategory=50 but wrong category.
	dense, err := fixtures.CreateTestScreen(foodBusiness, foodAddress, 100, 2000)
	require.NoError(t, err)
	sparse, err := fixtures.CreateTestScreen(foodBusiness, foodAddress, 100, 500)
	require.NoError(t, err)
	_, err = fixtures.CreateTestScreen(fashionBusiness, fashionAddress, 10, 500)
	require.NoError(t, err)

	t.Run("SelectsWithinCategoryAndBudget", func(t *testing.T) {
		resp, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      150,
			CategoryIDs: []string{food.ID.String()},
		}, meta)
		require.NoError(t, err)
		require.Len(t, resp.Screens, 1)
		assert.Equal(t, dense.ID.String(), resp.Screens[0].ID)
		assert.Equal(t, float64(100), resp.TotalCost)
		assert.Equal(t, 2000, resp.TotalTraffic)
		assert.Equal(t, float64(50), resp.RemainingBudget)
	})

	t.Run("LargerBudgetBuysBothFoodScreens", func(t *testing.T) {
		resp, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      250,
			CategoryIDs: []string{food.ID.String()},
		}, meta)
		require.NoError(t, err)
		require.Len(t, resp.Screens, 2)
		assert.Equal(t, dense.ID.String(), resp.Screens[0].ID)
		assert.Equal(t, sparse.ID.String(), resp.Screens[1].ID)
	})

	t.Run("MultipleCategoriesUnionCandidates", func(t *testing.T) {
		resp, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      1000,
			CategoryIDs: []string{food.ID.String(), fashion.ID.String()},
		}, meta)
		require.NoError(t, err)
		assert.Len(t, resp.Screens, 3)
	})

	t.Run("NoMatchingScreensIsEmptyNotError", func(t *testing.T) {
		empty, err := fixtures.CreateTestCategory("")
		require.NoError(t, err)

		resp, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      1000,
			CategoryIDs: []string{empty.ID.String()},
		}, meta)
		require.NoError(t, err)
		assert.Empty(t, resp.Screens)
		assert.Equal(t, float64(1000), resp.RemainingBudget)
	})

	t.Run("NonPositiveBudgetIsRejected", func(t *testing.T) {
		_, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      0,
			CategoryIDs: []string{food.ID.String()},
		}, meta)
		assert.True(t, IsInvalidBudget(err))
	})

	t.Run("NoCategoryIsRejected", func(t *testing.T) {
		_, err := flow.FindOptimalScreens(ctx, &dto.OptimalScreensRequest{
			Budget:      100,
			CategoryIDs: []string{},
		}, meta)
		assert.True(t, IsNoCategoryProvided(err))
	})
}

func TestListScreens(t *testing.T) {
	flow, fixtures, cleanup := setupScreenFlowEnv(t)
	defer cleanup()
	ctx := context.Background()

	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)
	_, err = fixtures.CreateTestScreen(business, address, 100, 1000)
	require.NoError(t, err)

	other, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	otherAddress, err := fixtures.CreateTestAddress(other)
	require.NoError(t, err)
	_, err = fixtures.CreateTestScreen(other, otherAddress, 100, 1000)
	require.NoError(t, err)

	t.Run("PublicListShowsAllScreens", func(t *testing.T) {
		resp, err := flow.ListScreens(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("BusinessListShowsOnlyOwnScreens", func(t *testing.T) {
		resp, err := flow.ListBusinessScreens(ctx, business.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})
}

func TestCreateScreenGuards(t *testing.T) {
	flow, fixtures, cleanup := setupScreenFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)

	t.Run("CreatesScreen", func(t *testing.T) {
		resp, err := flow.CreateScreen(ctx, &dto.CreateScreenRequest{
			BusinessID:      business.ID.String(),
			AddressID:       address.ID.String(),
			Name:            "lobby screen",
			PricePerTime:    120,
			Characteristics: "65 inch",
			Traffic:         1500,
		}, meta)
		require.NoError(t, err)
		assert.Equal(t, "lobby screen", resp.Screen.Name)
	})

	t.Run("ForeignAddressIsDenied", func(t *testing.T) {
		intruder, err := fixtures.CreateTestBusiness()
		require.NoError(t, err)

		_, err = flow.CreateScreen(ctx, &dto.CreateScreenRequest{
			BusinessID:   intruder.ID.String(),
			AddressID:    address.ID.String(),
			Name:         "stolen spot",
			PricePerTime: 10,
			Traffic:      10,
		}, meta)
		assert.True(t, IsAddressAccessDenied(err))
	})

	t.Run("NonPositivePriceIsRejected", func(t *testing.T) {
		_, err := flow.CreateScreen(ctx, &dto.CreateScreenRequest{
			BusinessID:   business.ID.String(),
			AddressID:    address.ID.String(),
			Name:         "free screen",
			PricePerTime: 0,
			Traffic:      10,
		}, meta)
		assert.True(t, IsInvalidPrice(err))
	})
}

func TestScreenModelRoundTrip(t *testing.T) {
	_, fixtures, cleanup := setupScreenFlowEnv(t)
	defer cleanup()

	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)
	screen, err := fixtures.CreateTestScreen(business, address, 100, 1000)
	require.NoError(t, err)

	var loaded models.Screen
	require.NoError(t, fixtures.DB.DB.First(&loaded, "id = ?", screen.ID).Error)
	assert.Equal(t, screen.PricePerTime, loaded.PricePerTime)
	assert.Equal(t, screen.Traffic, loaded.Traffic)
}
