package middleware

import (
	"net/http"

	"urbanserve/models"

	"github.com/gin-gonic/gin"
)

// RequireRole restricts a route to accounts holding one of the given roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		v, ok := c.Get(CurrentUserKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		user, ok := v.(*models.User)
		if !ok || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this action"})
			return
		}
		c.Next()
	}
}
