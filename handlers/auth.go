package handlers

import (
	"errors"
	"net/http"

	userService "urbanserve/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler handles account registration.
func RegisterHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req userService.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		result, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			var ve userService.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
				return
			}
			logger.Error("Registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":  userView(result.User),
			"token": result.Token,
		})
	}
}

// LoginHandler authenticates an account and returns a bearer token.
func LoginHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		result, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, userService.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":  userView(result.User),
			"token": result.Token,
		})
	}
}

// MeHandler returns the authenticated account.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(http.StatusOK, userView(u))
	}
}
