package api

import (
	"errors"
	"net/http"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/auth"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/cache"
	apierrors "github.com/lovelycreation-pixel/chatbot-backend/internal/errors"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const messageHistoryLimit = 200

func listClientsHandler(store services.ClientStore, clients *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := store.List()
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		result := make([]gin.H, 0, len(all))
		for _, client := range all {
			storage, err := clients.Storage(client.ClientID)
			if err != nil {
				apierrors.HandleError(c, apierrors.New500Error(err))
				return
			}
			result = append(result, gin.H{
				"clientId":       client.ClientID,
				"name":           client.Name,
				"domain":         client.Domain,
				"storageLimitMB": client.StorageLimitMB,
				"storageUsedMB":  storage.UsedMB,
				"messageCount":   storage.MessageCount,
				"tokens":         client.Tokens,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

func createClientHandler(clients *services.ClientService, clientSecret string) gin.HandlerFunc {
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

func getClientHandler(store services.ClientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, err := store.FindByClientID(c.Param("clientId"))
		if err != nil {
			if errors.Is(err, services.ErrClientNotFound) {
				apierrors.HandleError(c, apierrors.New404Error("Client not found"))
				return
			}
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

func updateClientHandler(clients *services.ClientService, widgetCache *cache.WidgetCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.Param("clientId")

		var update services.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			apierrors.HandleError(c, apierrors.New400Error("Invalid request format"))
			return
		}

		client, err := clients.UpdateProfile(clientID, update)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrClientNotFound):
				apierrors.HandleError(c, apierrors.New404Error("Client not found"))
			case errors.Is(err, services.ErrStorageLimitExceeded):
				apierrors.HandleError(c, apierrors.NewQuotaError("Update would exceed the storage limit"))
			default:
				apierrors.HandleError(c, apierrors.New500Error(err))
			}
			return
		}

		widgetCache.Invalidate(c.Request.Context(), clientID)
		c.JSON(http.StatusOK, client)
	}
}

func deleteClientHandler(store services.ClientStore, widgetCache *cache.WidgetCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.Param("clientId")
		if err := store.DeleteByClientID(clientID); err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		widgetCache.Invalidate(c.Request.Context(), clientID)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func adminWidgetHandler(widget *services.WidgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := widget.RefreshEmbedCode(c.Param("clientId"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrClientNotFound):
				apierrors.HandleError(c, apierrors.New404Error("Client not found"))
			case errors.Is(err, services.ErrStorageLimitExceeded):
				apierrors.HandleError(c, apierrors.NewQuotaError("Widget code would exceed the storage limit"))
			default:
				apierrors.HandleError(c, apierrors.New500Error(err))
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"widgetCode": code})
	}
}

func adminStorageHandler(clients *services.ClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage, err := clients.Storage(c.Param("clientId"))
		if err != nil {
			if errors.Is(err, services.ErrClientNotFound) {
				apierrors.HandleError(c, apierrors.New404Error("Client not found"))
				return
			}
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		c.JSON(http.StatusOK, storage)
	}
}

func clientMessagesHandler(messages services.MessageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := messages.Recent(c.Param("clientId"), messageHistoryLimit)
		if err != nil {
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
