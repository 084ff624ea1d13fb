// Package businessflow contains the core business logic and use cases for marketplace workflows
package businessflow

import (
	"context"
	"time"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/services"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles account registration and login for the three roles
type AuthFlow interface {
	UserSignup(ctx context.Context, req *dto.UserSignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	BusinessSignup(ctx context.Context, req *dto.BusinessSignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	UserLogin(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	BusinessLogin(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenData, error)
	GenerateCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error)
}

// AuthFlowImpl implements the auth business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	adminRepo    repository.AdminRepository
	categoryRepo repository.CategoryRepository
	tokenService services.TokenService
	captcha      services.CaptchaService
	bcryptCost   int
	db           *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	adminRepo repository.AdminRepository,
	categoryRepo repository.CategoryRepository,
	tokenService services.TokenService,
	captcha services.CaptchaService,
	bcryptCost int,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		adminRepo:    adminRepo,
		categoryRepo: categoryRepo,
		tokenService: tokenService,
		captcha:      captcha,
		bcryptCost:   bcryptCost,
		db:           db,
	}
}

// UserSignup registers a new advertiser account
func (f *AuthFlowImpl) UserSignup(ctx context.Context, req *dto.UserSignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	existing, err := f.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check existing accounts", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "Email is already registered", ErrEmailAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), f.bcryptCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := f.userRepo.Save(ctx, &user); err != nil {
		return nil, NewBusinessError("USER_CREATION_FAILED", "Failed to create account", err)
	}

	return f.buildAuthResponse("Signup successful", user.ID, user.Name, user.Email, services.RoleClient, user.CreatedAt)
}

// BusinessSignup registers a new venue-owner account linked to its categories.
// The business row and the category links commit together or not at all.
func (f *AuthFlowImpl) BusinessSignup(ctx context.Context, req *dto.BusinessSignupRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	existing, err := f.businessRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("BUSINESS_LOOKUP_FAILED", "Failed to check existing accounts", err)
	}
	if existing != nil {
		return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "Email is already registered", ErrEmailAlreadyExists)
	}

	categoryIDs, err := utils.ParseUUIDs(req.CategoryIDs)
	if err != nil {
		return nil, NewBusinessError("INVALID_CATEGORY_ID", "Category ids must be valid UUIDs", err)
	}
	for _, categoryID := range categoryIDs {
		category, err := f.categoryRepo.ByID(ctx, categoryID)
		if err != nil {
			return nil, NewBusinessError("CATEGORY_LOOKUP_FAILED", "Failed to lookup category", err)
		}
		if category == nil {
			return nil, NewBusinessError("CATEGORY_NOT_FOUND", "Category does not exist", ErrCategoryNotFound)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), f.bcryptCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	business := models.Business{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		return f.businessRepo.SaveWithCategories(txCtx, &business, categoryIDs)
	})
	if err != nil {
		return nil, NewBusinessError("BUSINESS_CREATION_FAILED", "Failed to create account", err)
	}

	return f.buildAuthResponse("Signup successful", business.ID, business.Name, business.Email, services.RoleBusiness, business.CreatedAt)
}

// UserLogin authenticates an advertiser
func (f *AuthFlowImpl) UserLogin(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	user, err := f.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup account", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "No account with this email", ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	return f.buildAuthResponse("Login successful", user.ID, user.Name, user.Email, services.RoleClient, user.CreatedAt)
}

// BusinessLogin authenticates a venue owner
func (f *AuthFlowImpl) BusinessLogin(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	business, err := f.businessRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("BUSINESS_LOOKUP_FAILED", "Failed to lookup account", err)
	}
	if business == nil {
		return nil, NewBusinessError("BUSINESS_NOT_FOUND", "No account with this email", ErrBusinessNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	return f.buildAuthResponse("Login successful", business.ID, business.Name, business.Email, services.RoleBusiness, business.CreatedAt)
}

// AdminLogin authenticates a platform admin. The captcha answer is checked
// before the password so failed challenges never leak whether the admin
// name exists.
func (f *AuthFlowImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	if !f.captcha.VerifyRotate(ctx, req.CaptchaID, req.CaptchaAngle) {
		return nil, NewBusinessError("CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
	}

	admin, err := f.adminRepo.ByName(ctx, req.Name)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup account", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "No admin with this name", ErrAdminNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	return f.buildAuthResponse("Login successful", admin.ID, admin.Name, "", services.RoleAdmin, time.Time{})
}

// RefreshToken exchanges a refresh token for a fresh pair
func (f *AuthFlowImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenData, error) {
	accessToken, refreshToken, err := f.tokenService.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	ttl := f.tokenService.AccessTokenTTL()
	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(ttl.Seconds()),
		ExpiresAt:    utils.UTCNow().Add(ttl),
	}, nil
}

// GenerateCaptcha issues a rotate captcha challenge for the admin login page
func (f *AuthFlowImpl) GenerateCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error) {
	challenge, err := f.captcha.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_GENERATION_FAILED", "Failed to generate captcha", err)
	}

	return &dto.CaptchaChallengeResponse{
		CaptchaID:   challenge.ID,
		MasterImage: challenge.MasterImageBase64,
		ThumbImage:  challenge.ThumbImageBase64,
		ExpiresIn:   int(challenge.TTL.Seconds()),
	}, nil
}

func (f *AuthFlowImpl) buildAuthResponse(message string, subjectID uuid.UUID, name, email, role string, createdAt time.Time) (*dto.AuthResponse, error) {
	accessToken, refreshToken, err := f.tokenService.GenerateTokens(subjectID, role)
	if err != nil {
		return nil, NewBusinessError("TOKEN_ISSUE_FAILED", "Failed to issue tokens", err)
	}

	ttl := f.tokenService.AccessTokenTTL()
	return &dto.AuthResponse{
		Message: message,
		Tokens: dto.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int(ttl.Seconds()),
			ExpiresAt:    utils.UTCNow().Add(ttl),
		},
		Account: dto.AccountDTO{
			ID:        subjectID.String(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: createdAt,
		},
	}, nil
}
