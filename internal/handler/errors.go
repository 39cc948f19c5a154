package handler

import (
	"errors"
	"net/http"

	"valomate/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse represents a generic success message.
type MessageResponse struct {
	Message string `json:"message" example:"Operation successful"`
}

// respondError maps service errors onto HTTP statuses. Anything unknown is
// a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrAlreadyVerified):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotVerified),
		errors.Is(err, service.ErrIncompleteProfile):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAlreadyInRoom),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrRequestResolved):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
