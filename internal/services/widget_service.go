package services

import (
	"fmt"
	"net/url"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
)

// WidgetService generates the embeddable loader script for a client's
// site. The generated code is persisted on the client record, where it
// counts toward the storage quota like any other profile field.
type WidgetService struct {
	clients  ClientStore
	messages MessageStore
	usage    *UsageService
	baseURL  string
}

func NewWidgetService(clients ClientStore, messages MessageStore, usage *UsageService, baseURL string) *WidgetService {
	return &WidgetService{clients: clients, messages: messages, usage: usage, baseURL: baseURL}
}

// EmbedCode renders the iframe loader. The script refuses to run outside
// the client's allowed domain (and its subdomains) when one is set.
func (s *WidgetService) EmbedCode(client *models.Client) string {
	return fmt.Sprintf(`<script>
(function () {
  try {
    var allowedDomain = %q;
    if (allowedDomain) {
      if (
        location.hostname !== allowedDomain &&
        !location.hostname.endsWith("." + allowedDomain)
      ) {
        return;
      }
    }
    if (document.getElementById("chatbot-widget-iframe")) return;
    var iframe = document.createElement("iframe");
    iframe.id = "chatbot-widget-iframe";
    iframe.src = "%s/widget-ui.html?clientId=%s";
    iframe.style.position = "fixed";
    iframe.style.bottom = "20px";
    iframe.style.right = "20px";
    iframe.style.width = "360px";
    iframe.style.height = "520px";
    iframe.style.border = "none";
    iframe.style.borderRadius = "12px";
    iframe.style.zIndex = "999999";
    iframe.style.boxShadow = "0 8px 24px rgba(0,0,0,0.2)";
    document.body.appendChild(iframe);
  } catch (e) {
    console.error("Chatbot widget error", e);
  }
})();
</script>`, client.Domain, s.baseURL, url.QueryEscape(client.ClientID))
}

// RefreshEmbedCode regenerates and persists the widget code. Because the
// stored code is quota-counted, the persist goes through the same
// profile-limit check as any other profile edit.
func (s *WidgetService) RefreshEmbedCode(clientID string) (string, error) {
	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		return "", err
	}

	code := s.EmbedCode(client)
	client.WidgetCode = code

	messageBytes, err := s.messages.SumSizes(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to sum message sizes: %w", err)
	}
	if !FitsStorageLimit(messageBytes+s.usage.ProfileBytes(client), client.StorageLimitMB) {
		return "", ErrStorageLimitExceeded
	}

	if err := s.clients.Update(client); err != nil {
		return "", fmt.Errorf("failed to persist widget code: %w", err)
	}
	return code, nil
}

// WidgetConfig is the public bootstrap payload the embedded widget loads.
// It exposes only presentation fields, never the admin info or limits.
type WidgetConfig struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	BotName  string `json:"botName"`
	Avatar   string `json:"avatar"`
	Fallback string `json:"fallback"`
	Domain   string `json:"domain"`
	Tokens   int64  `json:"tokens"`
}

// Config builds the public widget configuration for a client.
func (s *WidgetService) Config(clientID string) (*WidgetConfig, error) {
	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		return nil, err
	}
	return &WidgetConfig{
		ClientID: client.ClientID,
		Name:     client.Name,
		BotName:  client.BotName,
		Avatar:   client.Avatar,
		Fallback: client.Fallback,
		Domain:   client.Domain,
		Tokens:   client.Tokens,
	}, nil
}
