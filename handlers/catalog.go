package handlers

import (
	"net/http"

	"urbanserve/models"

	"github.com/gin-gonic/gin"
)

// ServiceTypesHandler lists the fixed category vocabularies.
func ServiceTypesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"home_service_types": models.HomeServiceTypes,
			"tutor_subjects":     models.TutorSubjects,
		})
	}
}
