package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	testingutil "github.com/amirphl/Izanagi/testing"
	"github.com/amirphl/Izanagi/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderFlowEnv wires a full order flow against a throwaway database
type orderFlowEnv struct {
	flow     OrderFlow
	fixtures *testingutil.TestFixtures
	business *models.Business
	user     *models.User
	screen   *models.Screen
	ad       *models.Ad
}

func setupOrderFlowEnv(t *testing.T) (*orderFlowEnv, func()) {
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

	fixtures := testingutil.NewTestFixtures(testDB)

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	business, err := fixtures.CreateTestBusiness()
	require.NoError(t, err)
	address, err := fixtures.CreateTestAddress(business)
	require.NoError(t, err)
	screen, err := fixtures.CreateTestScreen(business, address, 100, 1000)
	require.NoError(t, err)
	ad, err := fixtures.CreateTestAd(user, models.AdStatusApproved)
	require.NoError(t, err)

	flow := NewOrderFlow(
		repository.NewAdOrderRepository(testDB.DB),
		repository.NewAdRepository(testDB.DB),
		repository.NewScreenRepository(testDB.DB),
		repository.NewIncomeRepository(testDB.DB),
		testDB.DB,
	)

	return &orderFlowEnv{
		flow:     flow,
		fixtures: fixtures,
		business: business,
		user:     user,
		screen:   screen,
		ad:       ad,
	}, cleanup
}

func (e *orderFlowEnv) createOrderRequest() *dto.CreateAdOrderRequest {
	start := utils.UTCNow().Add(24 * time.Hour)
	return &dto.CreateAdOrderRequest{
		UserID:    e.user.ID.String(),
		AdID:      e.ad.ID.String(),
		ScreenID:  e.screen.ID.String(),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Price:     e.screen.PricePerTime,
	}
}

func (e *orderFlowEnv) decideRequest(orderID string) *dto.DecideAdOrderRequest {
	return &dto.DecideAdOrderRequest{
		OrderID:    orderID,
		BusinessID: e.business.ID.String(),
	}
}

func TestCreateAdOrder(t *testing.T) {
	env, cleanup := setupOrderFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("ApprovedAdBooksScreen", func(t *testing.T) {
		resp, err := env.flow.CreateAdOrder(ctx, env.createOrderRequest(), meta)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending.String(), resp.Order.Status)
		assert.Equal(t, env.screen.PricePerTime, resp.Order.Price)
	})

	t.Run("UnverifiedAdIsNotBookable", func(t *testing.T) {
		unverified, err := env.fixtures.CreateTestAd(env.user, models.AdStatusUnverified)
		require.NoError(t, err)

		req := env.createOrderRequest()
		req.AdID = unverified.ID.String()

		_, err = env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsAdUnverified(err))
	})

	t.Run("RejectedAdIsNotBookable", func(t *testing.T) {
		rejected, err := env.fixtures.CreateTestAd(env.user, models.AdStatusRejected)
		require.NoError(t, err)

		req := env.createOrderRequest()
		req.AdID = rejected.ID.String()

		_, err = env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsAdRejected(err))
	})

	t.Run("ForeignAdIsDenied", func(t *testing.T) {
		other, err := env.fixtures.CreateTestUser()
		require.NoError(t, err)
		foreignAd, err := env.fixtures.CreateTestAd(other, models.AdStatusApproved)
		require.NoError(t, err)

		req := env.createOrderRequest()
		req.AdID = foreignAd.ID.String()

		_, err = env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsAdAccessDenied(err))
	})

	t.Run("InvertedTimeWindowIsRejected", func(t *testing.T) {
		req := env.createOrderRequest()
		req.StartTime, req.EndTime = req.EndTime, req.StartTime

		_, err := env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsInvalidTimeWindow(err))
	})

	t.Run("EmptyTimeWindowIsRejected", func(t *testing.T) {
		req := env.createOrderRequest()
		req.EndTime = req.StartTime

		_, err := env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsInvalidTimeWindow(err))
	})

	t.Run("NonPositivePriceIsRejected", func(t *testing.T) {
		req := env.createOrderRequest()
		req.Price = 0

		_, err := env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsInvalidPrice(err))
	})

	t.Run("MissingScreenIsNotFound", func(t *testing.T) {
		req := env.createOrderRequest()
		req.ScreenID = "00000000-0000-4000-8000-000000000000"

		_, err := env.flow.CreateAdOrder(ctx, req, meta)
		assert.True(t, IsScreenNotFound(err))
	})
}

func TestApproveAdOrder(t *testing.T) {
	env, cleanup := setupOrderFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")
	incomeRepo := repository.NewIncomeRepository(env.fixtures.DB.DB)

	t.Run("ApprovalBooksIncomeOnce", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
		require.NoError(t, err)

		resp, err := env.flow.ApproveAdOrder(ctx, env.decideRequest(order.ID.String()), meta)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusApproved.String(), resp.Status)

		income, err := incomeRepo.ByAdOrderID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, income)
		assert.Equal(t, order.Price, income.Amount)
		assert.Equal(t, env.business.ID, income.BusinessID)
	})

	t.Run("DoubleApprovalConflicts", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusApproved)
		require.NoError(t, err)

		_, err = env.flow.ApproveAdOrder(ctx, env.decideRequest(order.ID.String()), meta)
		assert.True(t, IsOrderAlreadyApproved(err))
	})

	t.Run("ReapprovalAfterRejectReusesIncome", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
		require.NoError(t, err)
		req := env.decideRequest(order.ID.String())

		_, err = env.flow.ApproveAdOrder(ctx, req, meta)
		require.NoError(t, err)
		_, err = env.flow.RejectAdOrder(ctx, req, meta)
		require.NoError(t, err)
		_, err = env.flow.ApproveAdOrder(ctx, req, meta)
		require.NoError(t, err)

		var count int64
		err = env.fixtures.DB.DB.Model(&models.Income{}).
			Where("ad_order_id = ?", order.ID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ForeignBusinessIsDenied", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
		require.NoError(t, err)
		intruder, err := env.fixtures.CreateTestBusiness()
		require.NoError(t, err)

		req := env.decideRequest(order.ID.String())
		req.BusinessID = intruder.ID.String()

		_, err = env.flow.ApproveAdOrder(ctx, req, meta)
		assert.True(t, IsOrderAccessDenied(err))

		// The denied decision must not have booked anything.
		income, err := incomeRepo.ByAdOrderID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, income)
	})

	t.Run("MissingOrderIsNotFound", func(t *testing.T) {
		_, err := env.flow.ApproveAdOrder(ctx, env.decideRequest("00000000-0000-4000-8000-000000000000"), meta)
		assert.True(t, IsOrderNotFound(err))
	})
}

func TestRejectAdOrder(t *testing.T) {
	env, cleanup := setupOrderFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")
	incomeRepo := repository.NewIncomeRepository(env.fixtures.DB.DB)

	t.Run("RejectionFlipsStatus", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
		require.NoError(t, err)

		resp, err := env.flow.RejectAdOrder(ctx, env.decideRequest(order.ID.String()), meta)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusRejected.String(), resp.Status)
	})

	t.Run("DoubleRejectionConflicts", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusRejected)
		require.NoError(t, err)

		_, err = env.flow.RejectAdOrder(ctx, env.decideRequest(order.ID.String()), meta)
		assert.True(t, IsOrderAlreadyRejected(err))
	})

	t.Run("RejectionKeepsBookedIncome", func(t *testing.T) {
		order, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
		require.NoError(t, err)
		req := env.decideRequest(order.ID.String())

		_, err = env.flow.ApproveAdOrder(ctx, req, meta)
		require.NoError(t, err)
		_, err = env.flow.RejectAdOrder(ctx, req, meta)
		require.NoError(t, err)

		income, err := incomeRepo.ByAdOrderID(ctx, order.ID)
		require.NoError(t, err)
		assert.NotNil(t, income)
	})
}

func TestListOrders(t *testing.T) {
	env, cleanup := setupOrderFlowEnv(t)
	defer cleanup()
	ctx := context.Background()

	_, err := env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusPending)
	require.NoError(t, err)
	_, err = env.fixtures.CreateTestOrder(env.ad, env.screen, models.OrderStatusApproved)
	require.NoError(t, err)

	t.Run("BusinessSeesOrdersOnItsScreens", func(t *testing.T) {
		resp, err := env.flow.ListBusinessOrders(ctx, env.business.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("UserSeesOrdersOfItsAds", func(t *testing.T) {
		resp, err := env.flow.ListUserOrders(ctx, env.user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("StrangerSeesNothing", func(t *testing.T) {
		other, err := env.fixtures.CreateTestUser()
		require.NoError(t, err)

		resp, err := env.flow.ListUserOrders(ctx, other.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
	})
}
