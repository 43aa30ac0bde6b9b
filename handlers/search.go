package handlers

import (
	"net/http"

	"urbanserve/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchProvidersHandler lists approved providers filtered by category.
func SearchProvidersHandler(svc provider.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		results, err := svc.Search(c.Request.Context(),
			c.Query("service_type"), c.Query("subject"))
		if err != nil {
			logger.Error("Provider search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
		c.JSON(http.StatusOK, results)
	}
}
