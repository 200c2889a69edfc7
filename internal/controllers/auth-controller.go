package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ovenfresh/pizza-order-api/internal/auth"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
	log "github.com/sirupsen/logrus"
)

type AuthController struct {
	userService services.UserService
	issuer      *auth.TokenIssuer
	notifier    services.Notifier
	clientURL   string
}

func NewAuthController(userService services.UserService, issuer *auth.TokenIssuer, notifier services.Notifier, clientURL string) *AuthController {
	return &AuthController{
		userService: userService,
		issuer:      issuer,
		notifier:    notifier,
		clientURL:   clientURL,
	}
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"name":           user.Name,
		"phone":          user.Phone,
		"address":        user.Address,
		"role":           user.Role,
		"email_verified": user.EmailVerified,
	}
}

// Register godoc
// @Summary Register a new customer account
// @Description Creates an account and sends a verification email
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		Role:  models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondError(c, http.StatusInternalServerError, models.NewAPIError(
			models.ErrInternalServer, "Could not process password"))
		return
	}

	if err := ac.userService.CreateUser(user); err != nil {
		respondServiceError(c, err)
		return
	}

	verificationURL := fmt.Sprintf("%s/verify-email/%s", ac.clientURL, user.EmailVerificationToken)
	if err := ac.notifier.SendWelcome(user, verificationURL); err != nil {
		log.WithError(err).WithField("email", user.Email).Warn("Failed to send welcome email")
	}

	token, err := ac.issuer.Issue(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.NewAPIError(
			models.ErrInternalServer, "Token generation failed"))
		return
	}

	respondCreated(c, "Account created", gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(ac.issuer.TTL().Seconds()),
		"user":         userPayload(user),
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.userService.GetUserByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		respondError(c, http.StatusUnauthorized, models.NewAPIError(
			models.ErrUnauthorized, "Invalid email or password"))
		return
	}

	token, err := ac.issuer.Issue(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.NewAPIError(
			models.ErrInternalServer, "Token generation failed"))
		return
	}

	respondOK(c, "Logged in", gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(ac.issuer.TTL().Seconds()),
		"user":         userPayload(user),
	})
}

// VerifyEmail godoc
// @Summary Confirm an account's email address
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/v1/auth/verify-email/{token} [get]
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := ac.userService.VerifyEmail(token); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Email verified", nil)
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} Envelope
// @Router /api/v1/auth/forgot-password [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// Unknown addresses get the same response as known ones so the endpoint
	// cannot be used to enumerate accounts.
	user, token, err := ac.userService.CreateResetToken(req.Email)
	if err == nil {
		resetURL := fmt.Sprintf("%s/reset-password/%s", ac.clientURL, token)
		if err := ac.notifier.SendPasswordReset(user, resetURL); err != nil {
			log.WithError(err).WithField("email", req.Email).Warn("Failed to send password reset email")
		}
	}

	respondOK(c, "If an account exists for that email, a reset link has been sent", nil)
}

// ResetPassword godoc
// @Summary Set a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/v1/auth/reset-password/{token} [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ac.userService.ResetPassword(c.Param("token"), req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Password updated", nil)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/profile [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	user, err := ac.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "User not found"))
		return
	}
	respondOK(c, "", userPayload(user))
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/profile [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.userService.UpdateProfile(userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Profile updated", userPayload(user))
}
