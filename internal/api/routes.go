package api

import (
	"github.com/lovelycreation-pixel/chatbot-backend/internal/auth"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/cache"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps bundles everything the HTTP layer needs. The handlers themselves
// carry no state; they close over this.
type Deps struct {
	Chat        *services.ChatService
	Clients     *services.ClientService
	Widget      *services.WidgetService
	ClientStore services.ClientStore
	Messages    services.MessageStore
	WidgetCache *cache.WidgetCache

	AdminToken   string
	ClientSecret string
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Chatbot backend running")
	})

	r.POST("/chat", chatHandler(deps.Chat))
	r.POST("/client/register", registerClientHandler(deps.Clients, deps.ClientSecret))
	r.GET("/widget/config/:clientId", widgetConfigHandler(deps.Widget, deps.WidgetCache))

	client := r.Group("/client")
	client.Use(auth.ClientMiddleware(deps.ClientSecret, deps.ClientStore))
	{
		client.GET("/overview", clientOverviewHandler(deps.Clients))
		client.PUT("/settings", clientSettingsHandler(deps.Clients, deps.WidgetCache))
		client.POST("/clear-history", clearHistoryHandler(deps.Clients))
		client.GET("/widget", clientWidgetHandler(deps.Widget))
		client.GET("/storage", clientStorageHandler(deps.Clients))
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(auth.AdminMiddleware(deps.AdminToken))
	{
		dashboard.GET("/test", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})
		dashboard.GET("/clients", listClientsHandler(deps.ClientStore, deps.Clients))
		dashboard.POST("/clients/create", createClientHandler(deps.Clients, deps.ClientSecret))
		dashboard.GET("/clients/:clientId", getClientHandler(deps.ClientStore))
		dashboard.PUT("/clients/:clientId", updateClientHandler(deps.Clients, deps.WidgetCache))
		dashboard.DELETE("/clients/:clientId", deleteClientHandler(deps.ClientStore, deps.WidgetCache))
		dashboard.GET("/clients/:clientId/widget", adminWidgetHandler(deps.Widget))
		dashboard.GET("/clients/:clientId/storage", adminStorageHandler(deps.Clients))
		dashboard.GET("/clients/:clientId/messages", clientMessagesHandler(deps.Messages))
	}
}
