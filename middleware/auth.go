// middleware/auth.go
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"urbanserve/database/repository"
	"urbanserve/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and loads the account it names
// into the request context.
func AuthMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sub, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := userRepo.GetByID(uint(id))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
