package api

import (
	"net/http"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	ClientID string `json:"clientId"`
	Message  string `json:"message"`
}

// chatHandler is the single public conversation endpoint. It always
// answers 200 with a reply string: missing fields, unknown clients and
// backend failures all come back as conversational replies, not HTTP
// errors, because the widget renders whatever it receives.
func chatHandler(chat *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		// A malformed body is treated the same as an empty one: the
		// engine's own validation produces the benign reply.
		_ = c.ShouldBindJSON(&req)

		result := chat.ResolveReply(req.ClientID, req.Message)

		c.JSON(http.StatusOK, gin.H{
			"reply": result.Reply,
			"meta": gin.H{
				"historySaved":   result.HistorySaved,
				"storageUsedMB":  result.StorageUsedMB,
				"storageLimitMB": result.StorageLimitMB,
				"storageFull":    result.StorageFull,
			},
		})
	}
}
