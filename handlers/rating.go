package handlers

import (
	"errors"
	"net/http"

	ratingService "urbanserve/services/rating"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateRatingHandler records customer feedback for a provider.
func CreateRatingHandler(svc ratingService.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		var req ratingService.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		rating, err := svc.Create(c.Request.Context(), u.ID, req)
		if err != nil {
			var ve ratingService.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
				return
			}
			logger.Error("Rating creation failed", zap.Uint("customer_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rating creation failed"})
			return
		}
		c.JSON(http.StatusCreated, rating)
	}
}
