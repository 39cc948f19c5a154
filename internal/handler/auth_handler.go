package handler

import (
	"net/http"

	"valomate/backend/internal/service"
	"valomate/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=150" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// EmailInput carries a bare email address.
type EmailInput struct {
	Email string `json:"email" binding:"required,email" example:"test@example.com"`
}

// ResetPasswordInput carries the new password for a reset.
type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8" example:"newpassword123"`
}

// endregion

type AuthHandler struct {
	identity *service.IdentityService
}

func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates an inactive user and mails a verification link valid for 10 minutes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.identity.Register(input.Username, input.Email, input.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful. Please check your email for verification."})
}

// VerifyEmail godoc
// @Summary      Verify an email address
// @Description  Redeems the mailed verification token and activates the account.
// @Tags         auth
// @Produce      json
// @Param        token query string true "Verification token"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	if err := h.identity.VerifyEmail(token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully."})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates with username/email and password and returns a token. Unverified accounts are rejected.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Email verification required"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Login(input.Login, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ResendVerification godoc
// @Summary      Resend the verification email
// @Description  Invalidates any expired token and mails a fresh one. Rejected while a valid token exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body EmailInput true "Account email"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Account already verified"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "A valid token was already issued"
// @Router       /auth/resend-verification-email [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var input EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.identity.ResendVerification(input.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new verification email has been sent."})
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Mails a single-use reset link to the account's address.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body EmailInput true "Account email"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.identity.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link has been sent to your email."})
}

// ResetPassword godoc
// @Summary      Reset the password with a mailed token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        uid   path string true "User ID"
// @Param        token path string true "Reset token"
// @Param        input body ResetPasswordInput true "New password"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Invalid or expired token"
// @Router       /auth/reset-password/{uid}/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.identity.ResetPassword(c.Request.Context(), c.Param("uid"), c.Param("token"), input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
}
