package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	testingutil "github.com/amirphl/Izanagi/testing"
	"github.com/amirphl/Izanagi/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdFlowEnv(t *testing.T) (AdFlow, *testingutil.TestFixtures, func()) {
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

	flow := NewAdFlow(
		repository.NewAdRepository(testDB.DB),
		repository.NewUserRepository(testDB.DB),
		repository.NewCategoryRepository(testDB.DB),
		testDB.DB,
	)

	return flow, testingutil.NewTestFixtures(testDB), cleanup
}

func TestCreateAd(t *testing.T) {
	flow, fixtures, cleanup := setupAdFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	category, err := fixtures.CreateTestCategory("food")
	require.NoError(t, err)

	t.Run("NewAdStartsUnverified", func(t *testing.T) {
		resp, err := flow.CreateAd(ctx, &dto.CreateAdRequest{
			UserID:      user.ID.String(),
			Name:        "spring menu",
			ImgURL:      "https://cdn.example.com/menu.jpg",
			CategoryIDs: []string{category.ID.String()},
		}, meta)
		require.NoError(t, err)
		assert.Equal(t, models.AdStatusUnverified.String(), resp.Ad.Status)
	})

	t.Run("UnknownCategoryFails", func(t *testing.T) {
		_, err := flow.CreateAd(ctx, &dto.CreateAdRequest{
			UserID:      user.ID.String(),
			Name:        "bad ad",
			ImgURL:      "https://cdn.example.com/bad.jpg",
			CategoryIDs: []string{"00000000-0000-4000-8000-000000000000"},
		}, meta)
		assert.True(t, IsCategoryNotFound(err))
	})
}

func TestDecideAd(t *testing.T) {
	flow, fixtures, cleanup := setupAdFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)

	t.Run("ApproveUnverifiedAd", func(t *testing.T) {
		ad, err := fixtures.CreateTestAd(user, models.AdStatusUnverified)
		require.NoError(t, err)

		resp, err := flow.DecideAd(ctx, &dto.UpdateAdStatusRequest{
			ID:     ad.ID.String(),
			Status: models.AdStatusApproved.String(),
		}, meta)
		require.NoError(t, err)
		assert.Equal(t, models.AdStatusApproved.String(), resp.Status)
	})

	t.Run("RejectUnverifiedAd", func(t *testing.T) {
		ad, err := fixtures.CreateTestAd(user, models.AdStatusUnverified)
		require.NoError(t, err)

		resp, err := flow.DecideAd(ctx, &dto.UpdateAdStatusRequest{
			ID:     ad.ID.String(),
			Status: models.AdStatusRejected.String(),
		}, meta)
		require.NoError(t, err)
		assert.Equal(t, models.AdStatusRejected.String(), resp.Status)
	})

	t.Run("DecidedAdCannotBeDecidedAgain", func(t *testing.T) {
		ad, err := fixtures.CreateTestAd(user, models.AdStatusApproved)
		require.NoError(t, err)

		_, err = flow.DecideAd(ctx, &dto.UpdateAdStatusRequest{
			ID:     ad.ID.String(),
			Status: models.AdStatusRejected.String(),
		}, meta)
		assert.True(t, IsAdDecisionNotAllowed(err))
	})

	t.Run("MissingAdIsNotFound", func(t *testing.T) {
		_, err := flow.DecideAd(ctx, &dto.UpdateAdStatusRequest{
			ID:     "00000000-0000-4000-8000-000000000000",
			Status: models.AdStatusApproved.String(),
		}, meta)
		assert.True(t, IsAdNotFound(err))
	})
}

func TestUpdateAd(t *testing.T) {
	flow, fixtures, cleanup := setupAdFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	user, err := fixtures.CreateTestUser()
	require.NoError(t, err)
	adRepo := repository.NewAdRepository(fixtures.DB.DB)

	t.Run("ContentChangeResetsVerification", func(t *testing.T) {
		ad, err := fixtures.CreateTestAd(user, models.AdStatusApproved)
		require.NoError(t, err)

		_, err = flow.UpdateAd(ctx, &dto.UpdateAdRequest{
			ID:     ad.ID.String(),
			UserID: user.ID.String(),
			Name:   utils.ToPtr("new creative"),
		}, meta)
		require.NoError(t, err)

		loaded, err := adRepo.ByID(ctx, ad.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "new creative", loaded.Name)
		assert.Equal(t, models.AdStatusUnverified, loaded.Status)
	})

	t.Run("ForeignAdIsDenied", func(t *testing.T) {
		ad, err := fixtures.CreateTestAd(user, models.AdStatusUnverified)
		require.NoError(t, err)
		other, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		_, err = flow.UpdateAd(ctx, &dto.UpdateAdRequest{
			ID:     ad.ID.String(),
			UserID: other.ID.String(),
			Name:   utils.ToPtr("hijacked"),
		}, meta)
		assert.True(t, IsAdAccessDenied(err))
	})
}
