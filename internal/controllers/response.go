package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, apiErr models.APIError) {
	c.JSON(status, Envelope{Success: false, Error: apiErr})
}

// respondBindError translates binding failures into field-level details.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		respondError(c, http.StatusBadRequest, models.NewAPIError(
			models.ErrValidationFailed, "Request validation failed", details))
		return
	}
	respondError(c, http.StatusBadRequest, models.NewAPIError(
		models.ErrBadRequest, err.Error()))
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIngredientNotFound):
		respondError(c, http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, err.Error()))
	case errors.Is(err, services.ErrInvalidCategory):
		respondError(c, http.StatusBadRequest, models.NewAPIError(models.ErrInvalidCategory, err.Error()))
	case errors.Is(err, services.ErrInsufficientStock):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrInsufficientStock, err.Error()))
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
	case errors.Is(err, services.ErrIllegalTransition):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrIllegalTransition, err.Error()))
	case errors.Is(err, services.ErrNotCancellable):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrNotCancellable,
			"Order can no longer be cancelled"))
	case errors.Is(err, services.ErrRefundNotEligible):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrRefundNotEligible,
			"Order is not eligible for a refund"))
	case errors.Is(err, services.ErrRatingNotEligible):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrRatingNotEligible,
			"Only delivered orders can be rated"))
	case errors.Is(err, services.ErrInvalidRating):
		respondError(c, http.StatusBadRequest, models.NewAPIError(models.ErrInvalidRating,
			"Rating must be between 1 and 5"))
	case errors.Is(err, services.ErrSignatureMismatch):
		respondError(c, http.StatusBadRequest, models.NewAPIError(models.ErrPaymentVerification,
			"Payment signature verification failed"))
	case errors.Is(err, services.ErrUserExists):
		respondError(c, http.StatusConflict, models.NewAPIError(models.ErrConflict,
			"An account with this email already exists"))
	case errors.Is(err, services.ErrInvalidToken):
		respondError(c, http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest,
			"Token is invalid or has expired"))
	default:
		respondError(c, http.StatusInternalServerError, models.NewAPIError(
			models.ErrInternalServer, "Something went wrong"))
	}
}

// authenticatedUserID returns the user ID stored by the auth middleware.
func authenticatedUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		respondError(c, http.StatusUnauthorized, models.NewAPIError(
			models.ErrUnauthorized, "User not authenticated"))
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		respondError(c, http.StatusUnauthorized, models.NewAPIError(
			models.ErrUnauthorized, "Invalid user identity"))
		return 0, false
	}
	return id, true
}
