// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/app/services"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// RequireRole validates the bearer token and asserts the caller carries
// one of the given roles. Claims are stored in locals for downstream
// handlers.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, errResp := m.authenticate(c)
		if errResp != nil {
			return errResp
		}

		allowed := false
		for _, role := range roles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Insufficient role for this endpoint",
				Error:   dto.ErrorDetail{Code: "FORBIDDEN_ROLE"},
			})
		}

		m.storeClaims(c, claims)
		return c.Next()
	}
}

// Authenticate validates the bearer token without restricting the role
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, errResp := m.authenticate(c)
		if errResp != nil {
			return errResp
		}
		m.storeClaims(c, claims)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx) (*services.TokenClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Authorization header is required",
			Error:   dto.ErrorDetail{Code: "MISSING_AUTHORIZATION_HEADER"},
		})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Invalid authorization header format. Expected 'Bearer <token>'",
			Error:   dto.ErrorDetail{Code: "INVALID_AUTHORIZATION_FORMAT"},
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: "Access token is required",
			Error:   dto.ErrorDetail{Code: "MISSING_ACCESS_TOKEN"},
		})
	}

	claims, err := m.tokenService.ValidateToken(token)
	if err != nil {
		var code, msg string
		if errors.Is(err, services.ErrTokenExpired) {
			code = "TOKEN_EXPIRED"
			msg = "Access token has expired"
		} else if errors.Is(err, services.ErrTokenInvalid) {
			code = "TOKEN_INVALID"
			msg = "Invalid access token"
		} else {
			code = "TOKEN_VALIDATION_FAILED"
			msg = "Token validation failed"
		}
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
			Success: false,
			Message: msg,
			Error:   dto.ErrorDetail{Code: code},
		})
	}

	return claims, nil
}

func (m *AuthMiddleware) storeClaims(c fiber.Ctx, claims *services.TokenClaims) {
	c.Locals("subject_id", claims.SubjectID)
	c.Locals("role", claims.Role)
	c.Locals("token_id", claims.TokenID)
	c.Locals("token_claims", claims)

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		c.Locals("request_id", requestID)
	}
}

// GetSubjectIDFromContext extracts the authenticated subject id from the
// request context.
func GetSubjectIDFromContext(c fiber.Ctx) (uuid.UUID, bool) {
	subjectID, ok := c.Locals("subject_id").(uuid.UUID)
	return subjectID, ok
}

// GetRoleFromContext extracts the authenticated role from the request context
func GetRoleFromContext(c fiber.Ctx) (string, bool) {
	role, ok := c.Locals("role").(string)
	return role, ok
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.TokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.TokenClaims)
	return claims, ok
}
