package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Catalog errors
	ErrIngredientNotFound = "INGREDIENT_NOT_FOUND"
	ErrInvalidCategory    = "INVALID_INGREDIENT_CATEGORY"
	ErrInsufficientStock  = "INSUFFICIENT_STOCK"

	// Order lifecycle errors
	ErrOrderNotFound      = "ORDER_NOT_FOUND"
	ErrIllegalTransition  = "ILLEGAL_STATUS_TRANSITION"
	ErrNotCancellable     = "ORDER_NOT_CANCELLABLE"
	ErrRefundNotEligible  = "REFUND_NOT_ELIGIBLE"
	ErrRatingNotEligible  = "RATING_NOT_ELIGIBLE"
	ErrInvalidRating      = "INVALID_RATING"

	// Payment errors
	ErrPaymentVerification = "PAYMENT_VERIFICATION_FAILED"
	ErrPaymentGateway      = "PAYMENT_GATEWAY_ERROR"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
