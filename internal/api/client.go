package api

import (
	"errors"
	"net/http"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/auth"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/cache"
	apierrors "github.com/lovelycreation-pixel/chatbot-backend/internal/errors"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func clientFromContext(c *gin.Context) (*models.Client, bool) {
	value, exists := c.Get("client")
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{"error": "Client access denied"})
		return nil, false
	}
	client, ok := value.(*models.Client)
	if !ok {
		apierrors.HandleError(c, apierrors.New500Error(errors.New("invalid client type in context")))
		return nil, false
	}
	return client, true
}

func registerClientHandler(clients *services.ClientService, clientSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		_ = c.ShouldBindJSON(&req)

		client, err := clients.Register(req.Name)
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		token, err := auth.IssueClientToken(clientSecret, client.ClientID)
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientId":    client.ClientID,
			"name":        client.Name,
			"clientToken": token,
		})
	}
}

func clientOverviewHandler(clients *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := clientFromContext(c)
		if !ok {
			return
		}

		storage, err := clients.Storage(client.ClientID)
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientId": client.ClientID,
			"name":     client.Name,
			"storage": gin.H{
				"usedMB":      storage.UsedMB,
				"limitMB":     storage.LimitMB,
				"percentUsed": storage.UsedPercent,
			},
			"retentionDays": client.RetentionDays,
			"hasApiKey":     client.APIKey != "",
		})
	}
}

// clientSettingsRequest is the self-service subset of the profile: a
// client cannot raise its own storage limit, that stays admin-only.
type clientSettingsRequest struct {
	AdminInfo     *string `json:"adminInfo"`
	Fallback      *string `json:"fallback"`
	BotName       *string `json:"botName"`
	Avatar        *string `json:"avatar"`
	Domain        *string `json:"domain"`
	APIKey        *string `json:"apiKey"`
	RetentionDays *int    `json:"retentionDays"`
}

func clientSettingsHandler(clients *services.ClientService, widgetCache *cache.WidgetCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := clientFromContext(c)
		if !ok {
			return
		}

		var req clientSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.HandleError(c, apierrors.New400Error("Invalid request format"))
			return
		}

		update := services.ProfileUpdate{
			AdminInfo:     req.AdminInfo,
			Fallback:      req.Fallback,
			BotName:       req.BotName,
			Avatar:        req.Avatar,
			Domain:        req.Domain,
			APIKey:        req.APIKey,
			RetentionDays: req.RetentionDays,
		}

		if _, err := clients.UpdateProfile(client.ClientID, update); err != nil {
			if errors.Is(err, services.ErrStorageLimitExceeded) {
				apierrors.HandleError(c, apierrors.NewQuotaError("Update would exceed the storage limit"))
				return
			}
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		widgetCache.Invalidate(c.Request.Context(), client.ClientID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func clearHistoryHandler(clients *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := clientFromContext(c)
		if !ok {
			return
		}

		var req struct {
			Mode string `json:"mode" binding:"required,oneof=all olderThanDays"`
			Days int    `json:"days"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.HandleError(c, apierrors.New400Error("Mode must be 'all' or 'olderThanDays'"))
			return
		}

		if err := clients.ClearHistory(client.ClientID, req.Mode, req.Days); err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func clientWidgetHandler(widget *services.WidgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := clientFromContext(c)
		if !ok {
			return
		}

		code, err := widget.RefreshEmbedCode(client.ClientID)
		if err != nil {
			if errors.Is(err, services.ErrStorageLimitExceeded) {
				apierrors.HandleError(c, apierrors.NewQuotaError("Widget code would exceed the storage limit"))
				return
			}
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"embedCode": code})
	}
}

func clientStorageHandler(clients *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := clientFromContext(c)
		if !ok {
			return
		}

		storage, err := clients.Storage(client.ClientID)
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		// The self-service view colors earlier than the admin one.
		status := "green"
		if storage.LimitMB > 0 {
			ratio := storage.UsedMB / storage.LimitMB
			if ratio > 0.7 {
				status = "yellow"
			}
			if ratio > 0.9 {
				status = "red"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"usedMB":  storage.UsedMB,
			"limitMB": storage.LimitMB,
			"status":  status,
		})
	}
}
