package wsocket

import (
	"net/http"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Handler runs the widget's websocket transport. Each inbound frame is one
// user message; each outbound frame carries the resolved reply plus the
// same storage metadata the HTTP endpoint returns.
type Handler struct {
	chat     *services.ChatService
	upgrader websocket.Upgrader
}

type inboundFrame struct {
	ClientID string `json:"clientId"`
	Message  string `json:"message"`
}

type replyFrame struct {
	Type           string  `json:"type"`
	Reply          string  `json:"reply"`
	HistorySaved   bool    `json:"historySaved"`
	StorageUsedMB  float64 `json:"storageUsedMB"`
	StorageLimitMB float64 `json:"storageLimitMB"`
	StorageFull    bool    `json:"storageFull"`
}

func NewHandler(chat *services.ChatService, upgrader websocket.Upgrader) *Handler {
	return &Handler{chat: chat, upgrader: upgrader}
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The widget may pin its client id on the query string so frames only
	// need to carry the message text.
	defaultClientID := r.URL.Query().Get("clientId")

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Msg("Websocket read failed")
			}
			return
		}
		if frame.ClientID == "" {
			frame.ClientID = defaultClientID
		}

		result := h.chat.ResolveReply(frame.ClientID, frame.Message)

		if err := conn.WriteJSON(replyFrame{
			Type:           "reply",
			Reply:          result.Reply,
			HistorySaved:   result.HistorySaved,
			StorageUsedMB:  result.StorageUsedMB,
			StorageLimitMB: result.StorageLimitMB,
			StorageFull:    result.StorageFull,
		}); err != nil {
			log.Error().Err(err).Msg("Websocket write failed")
			return
		}
	}
}
