package api

import (
	"errors"
	"net/http"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/cache"
	apierrors "github.com/lovelycreation-pixel/chatbot-backend/internal/errors"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// widgetConfigHandler serves the public widget bootstrap config. Every
// page embedding a widget hits this, so results are cached.
func widgetConfigHandler(widget *services.WidgetService, widgetCache *cache.WidgetCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.Param("clientId")

		if cfg := widgetCache.Get(c.Request.Context(), clientID); cfg != nil {
			c.JSON(http.StatusOK, cfg)
			return
		}

		cfg, err := widget.Config(clientID)
		if err != nil {
			if errors.Is(err, services.ErrClientNotFound) {
				apierrors.HandleError(c, apierrors.New404Error("Invalid client"))
				return
			}
			apierrors.HandleError(c, apierrors.New500Error(err))
			return
		}

		widgetCache.Set(c.Request.Context(), cfg)
		c.JSON(http.StatusOK, cfg)
	}
}
