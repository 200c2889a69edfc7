package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate these
// into HTTP status codes and envelope messages.
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidCategory    = errors.New("invalid ingredient category")
	ErrInsufficientStock  = errors.New("insufficient ingredient stock")

	ErrOrderNotFound     = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotCancellable    = errors.New("order cannot be cancelled at this stage")
	ErrRefundNotEligible = errors.New("order is not eligible for a refund")
	ErrRatingNotEligible = errors.New("order must be delivered to submit a rating")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")

	ErrSignatureMismatch = errors.New("payment verification failed")

	ErrUserExists   = errors.New("user already exists")
	ErrInvalidToken = errors.New("invalid or expired token")
)
