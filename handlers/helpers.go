package handlers

import (
	"riggerbackend/models"

	"github.com/gin-gonic/gin"
)

func newUserFromRequest(name, email, role, phone, trade string) *models.User {
	if role != models.RoleWorker && role != models.RoleEmployer {
		role = models.RoleWorker
	}
	return &models.User{
		Name:   name,
		Email:  email,
		Role:   role,
		Phone:  phone,
		Trade:  trade,
		Active: true,
	}
}

// callerOwnsResource reports whether the authenticated user is the
// resource owner or an admin.
func callerOwnsResource(c *gin.Context, ownerID string) bool {
	userID, _ := c.Get("userID")
	role, _ := c.Get("userRole")
	if r, ok := role.(string); ok && r == models.RoleAdmin {
		return true
	}
	id, ok := userID.(string)
	return ok && id == ownerID
}
