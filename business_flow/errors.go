// Package businessflow contains the core business logic and use cases for marketplace workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrBusinessNotFound   = errors.New("business not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCaptchaFailed      = errors.New("captcha verification failed")

	// Catalog errors
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrAddressNotFound       = errors.New("address not found")
	ErrAddressAccessDenied   = errors.New("address does not belong to this business")

	// Screen errors
	ErrScreenNotFound     = errors.New("screen not found")
	ErrScreenAccessDenied = errors.New("screen does not belong to this business")
	ErrInvalidPrice       = errors.New("price must be positive")

	// Allocation errors
	ErrInvalidBudget      = errors.New("budget must be positive")
	ErrNoCategoryProvided = errors.New("at least one category is required")

	// Ad errors
	ErrAdNotFound           = errors.New("ad not found")
	ErrAdAccessDenied       = errors.New("ad does not belong to this user")
	ErrAdUnverified         = errors.New("ad has not been verified yet")
	ErrAdRejected           = errors.New("ad has been rejected")
	ErrAdDecisionNotAllowed = errors.New("ad has already been decided")

	// Order errors
	ErrOrderNotFound        = errors.New("ad order not found")
	ErrOrderAccessDenied    = errors.New("ad order does not belong to this business")
	ErrOrderAlreadyApproved = errors.New("ad order is already approved")
	ErrOrderAlreadyRejected = errors.New("ad order is already rejected")
	ErrInvalidTimeWindow    = errors.New("end time must be after start time")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsBusinessNotFound(err error) bool {
	return errors.Is(err, ErrBusinessNotFound)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsCategoryAlreadyExists(err error) bool {
	return errors.Is(err, ErrCategoryAlreadyExists)
}

func IsAddressNotFound(err error) bool {
	return errors.Is(err, ErrAddressNotFound)
}

func IsAddressAccessDenied(err error) bool {
	return errors.Is(err, ErrAddressAccessDenied)
}

func IsScreenNotFound(err error) bool {
	return errors.Is(err, ErrScreenNotFound)
}

func IsScreenAccessDenied(err error) bool {
	return errors.Is(err, ErrScreenAccessDenied)
}

func IsInvalidPrice(err error) bool {
	return errors.Is(err, ErrInvalidPrice)
}

func IsInvalidBudget(err error) bool {
	return errors.Is(err, ErrInvalidBudget)
}

func IsNoCategoryProvided(err error) bool {
	return errors.Is(err, ErrNoCategoryProvided)
}

func IsAdNotFound(err error) bool {
	return errors.Is(err, ErrAdNotFound)
}

func IsAdAccessDenied(err error) bool {
	return errors.Is(err, ErrAdAccessDenied)
}

func IsAdUnverified(err error) bool {
	return errors.Is(err, ErrAdUnverified)
}

func IsAdRejected(err error) bool {
	return errors.Is(err, ErrAdRejected)
}

func IsAdDecisionNotAllowed(err error) bool {
	return errors.Is(err, ErrAdDecisionNotAllowed)
}

func IsOrderNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

func IsOrderAccessDenied(err error) bool {
	return errors.Is(err, ErrOrderAccessDenied)
}

func IsOrderAlreadyApproved(err error) bool {
	return errors.Is(err, ErrOrderAlreadyApproved)
}

func IsOrderAlreadyRejected(err error) bool {
	return errors.Is(err, ErrOrderAlreadyRejected)
}

func IsInvalidTimeWindow(err error) bool {
	return errors.Is(err, ErrInvalidTimeWindow)
}
