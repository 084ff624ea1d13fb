// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// UserSignupRequest represents an advertiser signup form
type UserSignupRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// BusinessSignupRequest represents a venue-owner signup form.
// Category IDs link the business into the allocation candidate pool.
type BusinessSignupRequest struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Email           string   `json:"email" validate:"required,email,max=255"`
	Password        string   `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string   `json:"confirm_password" validate:"required,eqfield=Password"`
	CategoryIDs     []string `json:"category_ids" validate:"required,min=1,dive,uuid4"`
}

// LoginRequest represents the login payload shared by users and businesses
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// AdminLoginRequest represents the admin login payload.
// The captcha fields answer a previously issued rotate challenge.
type AdminLoginRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Password     string  `json:"password" validate:"required,min=8,max=100"`
	CaptchaID    string  `json:"captcha_id" validate:"required"`
	CaptchaAngle float64 `json:"captcha_angle" validate:"min=0,max=360"`
}

// TokenData represents the issued token pair in auth responses
type TokenData struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AccountDTO represents account data returned in auth responses
type AccountDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// AuthResponse represents a successful signup or login
type AuthResponse struct {
	Message string     `json:"message"`
	Tokens  TokenData  `json:"tokens"`
	Account AccountDTO `json:"account"`
}

// RefreshTokenRequest represents the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CaptchaChallengeResponse carries a generated rotate captcha challenge
type CaptchaChallengeResponse struct {
	CaptchaID   string `json:"captcha_id"`
	MasterImage string `json:"master_image"`
	ThumbImage  string `json:"thumb_image"`
	ExpiresIn   int    `json:"expires_in"`
}

// Common error codes for auth operations
const (
	ErrorUserNotFound      = "USER_NOT_FOUND"
	ErrorIncorrectPassword = "INCORRECT_PASSWORD"
	ErrorEmailTaken        = "EMAIL_ALREADY_EXISTS"
	ErrorCaptchaFailed     = "CAPTCHA_FAILED"
)
