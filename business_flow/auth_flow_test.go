package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/services"
	"github.com/amirphl/Izanagi/repository"
	testingutil "github.com/amirphl/Izanagi/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthFlowEnv(t *testing.T) (AuthFlow, *testingutil.TestFixtures, func()) {
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

	tokenService, err := services.NewTokenService(
		time.Hour, 24*time.Hour, "izanagi-test", "izanagi-test-api",
		false, "", "", "test-secret-key-for-signing-tokens",
	)
	require.NoError(t, err)

	// Captcha is only touched by admin login, which is not under test here.
	flow := NewAuthFlow(
		repository.NewUserRepository(testDB.DB),
		repository.NewBusinessRepository(testDB.DB),
		repository.NewAdminRepository(testDB.DB),
		repository.NewCategoryRepository(testDB.DB),
		tokenService,
		nil,
		bcrypt.MinCost,
		testDB.DB,
	)

	return flow, testingutil.NewTestFixtures(testDB), cleanup
}

func TestUserSignupAndLogin(t *testing.T) {
	flow, _, cleanup := setupAuthFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	signupReq := &dto.UserSignupRequest{
		Name:            "Jane Advertiser",
		Email:           "jane@example.com",
		Password:        "SuperSecret1!",
		ConfirmPassword: "SuperSecret1!",
	}

	t.Run("SignupIssuesTokens", func(t *testing.T) {
		resp, err := flow.UserSignup(ctx, signupReq, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "jane@example.com", resp.Account.Email)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		_, err := flow.UserSignup(ctx, signupReq, meta)
		assert.True(t, IsEmailAlreadyExists(err))
	})

	t.Run("LoginWithCorrectPassword", func(t *testing.T) {
		resp, err := flow.UserLogin(ctx, &dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "SuperSecret1!",
		}, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("LoginWithWrongPassword", func(t *testing.T) {
		_, err := flow.UserLogin(ctx, &dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "WrongPassword1!",
		}, meta)
		assert.True(t, IsIncorrectPassword(err))
	})

	t.Run("LoginUnknownEmail", func(t *testing.T) {
		_, err := flow.UserLogin(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "SuperSecret1!",
		}, meta)
		assert.True(t, IsUserNotFound(err))
	})

	t.Run("RefreshToken", func(t *testing.T) {
		login, err := flow.UserLogin(ctx, &dto.LoginRequest{
			Email:    "jane@example.com",
			Password: "SuperSecret1!",
		}, meta)
		require.NoError(t, err)

		tokens, err := flow.RefreshToken(ctx, &dto.RefreshTokenRequest{
			RefreshToken: login.Tokens.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})
}

func TestBusinessSignupAndLogin(t *testing.T) {
	flow, fixtures, cleanup := setupAuthFlowEnv(t)
	defer cleanup()
	ctx := context.Background()
	meta := NewClientMetadata("127.0.0.1", "test-agent")

	category, err := fixtures.CreateTestCategory("food")
	require.NoError(t, err)

	t.Run("SignupLinksCategories", func(t *testing.T) {
		resp, err := flow.BusinessSignup(ctx, &dto.BusinessSignupRequest{
			Name:            "Corner Cafe",
			Email:           "cafe@example.com",
			Password:        "SuperSecret1!",
			ConfirmPassword: "SuperSecret1!",
			CategoryIDs:     []string{category.ID.String()},
		}, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("SignupWithUnknownCategoryFails", func(t *testing.T) {
		_, err := flow.BusinessSignup(ctx, &dto.BusinessSignupRequest{
			Name:            "Ghost Venue",
			Email:           "ghost@example.com",
			Password:        "SuperSecret1!",
			ConfirmPassword: "SuperSecret1!",
			CategoryIDs:     []string{"00000000-0000-4000-8000-000000000000"},
		}, meta)
		assert.True(t, IsCategoryNotFound(err))
	})

	t.Run("BusinessLogin", func(t *testing.T) {
		resp, err := flow.BusinessLogin(ctx, &dto.LoginRequest{
			Email:    "cafe@example.com",
			Password: "SuperSecret1!",
		}, meta)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})
}
