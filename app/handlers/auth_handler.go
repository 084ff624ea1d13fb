// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/amirphl/Izanagi/app/dto"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	UserSignup(c fiber.Ctx) error
	BusinessSignup(c fiber.Ctx) error
	UserLogin(c fiber.Ctx) error
	BusinessLogin(c fiber.Ctx) error
	AdminLogin(c fiber.Ctx) error
	RefreshToken(c fiber.Ctx) error
	Captcha(c fiber.Ctx) error
	Health(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: validator.New(),
	}
}

// UserSignup handles advertiser registration
// @Summary User Registration
// @Description Register a new advertiser account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.UserSignupRequest true "User registration data"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Router /api/v1/auth/users/signup [post]
func (h *AuthHandler) UserSignup(c fiber.Ctx) error {
	var req dto.UserSignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.authFlow.UserSignup(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return errorResponse(c, fiber.StatusConflict, "Email already exists", dto.ErrorEmailTaken, nil)
		}
		log.Println("User signup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// BusinessSignup handles venue-owner registration
// @Summary Business Registration
// @Description Register a new business account with its advertising categories
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.BusinessSignupRequest true "Business registration data"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Router /api/v1/auth/businesses/signup [post]
func (h *AuthHandler) BusinessSignup(c fiber.Ctx) error {
	var req dto.BusinessSignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.authFlow.BusinessSignup(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return errorResponse(c, fiber.StatusConflict, "Email already exists", dto.ErrorEmailTaken, nil)
		}
		if businessflow.IsCategoryNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "One or more categories do not exist", "CATEGORY_NOT_FOUND", nil)
		}
		log.Println("Business signup failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// UserLogin handles advertiser authentication
// @Summary User Login
// @Description Authenticate an advertiser with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 401 {object} dto.APIResponse "Authentication failed"
// @Router /api/v1/auth/users/login [post]
func (h *AuthHandler) UserLogin(c fiber.Ctx) error {
	return h.login(c, h.authFlow.UserLogin)
}

// BusinessLogin handles venue-owner authentication
// @Summary Business Login
// @Description Authenticate a business with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 401 {object} dto.APIResponse "Authentication failed"
// @Router /api/v1/auth/businesses/login [post]
func (h *AuthHandler) BusinessLogin(c fiber.Ctx) error {
	return h.login(c, h.authFlow.BusinessLogin)
}

type loginFunc func(ctx context.Context, req *dto.LoginRequest, metadata *businessflow.ClientMetadata) (*dto.AuthResponse, error)

func (h *AuthHandler) login(c fiber.Ctx, flow loginFunc) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := flow(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) || businessflow.IsBusinessNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Account not found", dto.ErrorUserNotFound, nil)
		}
		if businessflow.IsIncorrectPassword(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Incorrect password", dto.ErrorIncorrectPassword, nil)
		}
		log.Println("Login failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// AdminLogin handles admin authentication with a rotate captcha
// @Summary Admin Login
// @Description Authenticate an admin with name, password and a solved captcha
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 401 {object} dto.APIResponse "Authentication failed"
// @Router /api/v1/auth/admins/login [post]
func (h *AuthHandler) AdminLogin(c fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.authFlow.AdminLogin(requestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCaptchaFailed(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Captcha verification failed", dto.ErrorCaptchaFailed, nil)
		}
		if businessflow.IsAdminNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", dto.ErrorIncorrectPassword, nil)
		}
		log.Println("Admin login failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh Tokens
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenData} "Tokens refreshed"
// @Failure 401 {object} dto.APIResponse "Invalid refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := validateStruct(c, h.validator, &req); !ok {
		return err
	}

	tokens, err := h.authFlow.RefreshToken(requestContext(c), &req)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "TOKEN_INVALID", nil)
	}

	return successResponse(c, fiber.StatusOK, "Tokens refreshed", tokens)
}

// Captcha issues a rotate captcha challenge for admin login
// @Summary Generate Captcha
// @Description Issue a rotate captcha challenge
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CaptchaChallengeResponse} "Challenge issued"
// @Router /api/v1/auth/captcha [get]
func (h *AuthHandler) Captcha(c fiber.Ctx) error {
	challenge, err := h.authFlow.GenerateCaptcha(requestContext(c))
	if err != nil {
		log.Println("Captcha generation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to generate captcha", "CAPTCHA_GENERATION_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Captcha generated", challenge)
}

// Health handles health check requests
// @Summary Health Check
// @Description Check the health status of the API
// @Tags Health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is healthy"
// @Router /api/v1/health [get]
func (h *AuthHandler) Health(c fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, "Service is healthy", fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
