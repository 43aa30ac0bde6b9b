package handlers

import (
	"urbanserve/middleware"
	"urbanserve/models"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated account set by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		return nil
	}
	u, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return u
}

// userView is the public shape of an account. The password hash never
// leaves the model, but trust score and role do.
func userView(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"trust_score": u.TrustScore,
		"created_at":  u.CreatedAt,
	}
}
