package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/cmd/api/config"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/api"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/cache"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/database"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/utils/textmatch"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/wsocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.NewConfig()

	if cfg.AdminToken == "" {
		log.Fatal("ADMIN_TOKEN is not set in the environment")
	}
	if cfg.ClientTokenSecret == "" {
		log.Fatal("CLIENT_TOKEN_SECRET is not set in the environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Redis is optional: without it the widget config is served straight
	// from the database.
	widgetCache, err := cache.New(cfg.WidgetCacheTTL)
	if err != nil {
		zlog.Warn().Err(err).Msg("Widget cache disabled")
		widgetCache = nil
	} else {
		defer widgetCache.Close()
	}

	clientStore := services.NewClientStore(db)
	messageStore := services.NewMessageStore(db)
	usageService := services.NewUsageService(clientStore, messageStore, services.DefaultQuotaFields)
	chatService := services.NewChatService(clientStore, messageStore, usageService, textmatch.NewConfig())
	clientService := services.NewClientService(clientStore, messageStore, usageService)
	widgetService := services.NewWidgetService(clientStore, messageStore, usageService, cfg.WidgetBaseURL)

	retentionService := services.NewRetentionService(messageStore, cfg.RetentionSchedule)
	if err := retentionService.Start(); err != nil {
		log.Fatalf("Failed to start retention sweep: %v", err)
	}
	defer retentionService.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-admin-token", "x-client-token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, api.Deps{
		Chat:         chatService,
		Clients:      clientService,
		Widget:       widgetService,
		ClientStore:  clientStore,
		Messages:     messageStore,
		WidgetCache:  widgetCache,
		AdminToken:   cfg.AdminToken,
		ClientSecret: cfg.ClientTokenSecret,
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // widgets embed on arbitrary customer domains
		},
	}
	wsHandler := wsocket.NewHandler(chatService, upgrader)
	r.GET("/ws", func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
