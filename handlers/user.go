package handlers

import (
	"errors"
	"net/http"

	userService "riggerbackend/services/user"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	UserService userService.UserService
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
		Phone    string `json:"phone"`
		Trade    string `json:"trade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usr := newUserFromRequest(req.Name, req.Email, req.Role, req.Phone, req.Trade)
	result, err := h.UserService.Register(c.Request.Context(), usr, req.Password)
	if err != nil {
		logger.Error("Registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.UserService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Authentication error", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserByIDHandler handles GET /api/users/id/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	usr, err := h.UserService.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("User not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateUserHandler handles PATCH /api/users/update/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !callerOwnsResource(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	usr, err := h.UserService.Update(c.Request.Context(), id, fields)
	if err != nil {
		logger.Error("Failed to update user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/users/delete/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !callerOwnsResource(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err := h.UserService.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Delete error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// RevokeUserAuthTokenHandler handles DELETE /api/users/revoke/:id.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if !callerOwnsResource(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if err := h.UserService.RevokeToken(c.Request.Context(), id); err != nil {
		logger.Error("Revoke error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}
