package handlers

import (
	"errors"
	"net/http"
	"strings"

	"urbanserve/models"
	ai "urbanserve/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler runs one round trip of the conversational recommender.
func ChatHandler(svc ai.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		var req struct {
			Message             string            `json:"message"`
			ConversationHistory []models.ChatTurn `json:"conversation_history"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
			return
		}

		result, err := svc.Converse(c.Request.Context(), req.Message, req.ConversationHistory)
		if err != nil {
			if errors.Is(err, ai.ErrAPIKeyMissing) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
				return
			}
			logger.Error("Chat round failed", zap.Uint("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is temporarily unavailable"})
			return
		}

		resp := gin.H{
			"reply":                result.Reply,
			"conversation_history": result.History,
		}
		if result.Providers != nil {
			resp["recommended_providers"] = result.Providers
		}
		c.JSON(http.StatusOK, resp)
	}
}
