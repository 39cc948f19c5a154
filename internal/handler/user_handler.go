package handler

import (
	"net/http"

	"valomate/backend/internal/models"
	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ChangeUsernameInput carries the requested new username.
type ChangeUsernameInput struct {
	NewUsername string `json:"new_username" binding:"required,min=3,max=150" example:"newname"`
}

// ChangePasswordInput carries the old and new passwords.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the authenticated user's own profile.
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"testuser"`
	Email    string `json:"email" example:"test@example.com"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// endregion

type UserHandler struct {
	identity *service.IdentityService
}

func NewUserHandler(identity *service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// GetMe godoc
// @Summary      Get current user's info
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.identity.GetUser(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*user))
}

// ChangeUsername godoc
// @Summary      Change the current user's username
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ChangeUsernameInput true "New username"
// @Success      200  {object}  MessageResponse
// @Failure      409  {object}  ErrorResponse "Username already taken"
// @Router       /users/me/username [put]
func (h *UserHandler) ChangeUsername(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ChangeUsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.identity.ChangeUsername(userID.(uint), input.NewUsername); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully."})
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Description  Verifies the old password, sets the new one and mails a notice.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ChangePasswordInput true "Old and new passwords"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse "Old password is incorrect"
// @Router       /users/me/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.identity.ChangePassword(userID.(uint), input.OldPassword, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// DeleteAccount godoc
// @Summary      Delete the current user's account
// @Tags         users
// @Security     BearerAuth
// @Success      204  "Account deleted"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := h.identity.DeleteAccount(userID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
