package services

import (
	"errors"
	"strings"
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/utils/textmatch"

	"github.com/rs/zerolog/log"
)

// Conversational replies used instead of errors. The engine never lets a
// failure escape its boundary: every path resolves to one of these or to a
// matched/fallback sentence.
const (
	ReplyClientIDMissing = "Client ID missing"
	ReplyNoMessage       = "No message received"
	ReplyClientNotFound  = "Client not found"
	ReplyServerError     = "Server error. Please try again."
)

// ReplyResult is what the chat endpoint returns to the caller. The
// metadata fields are always present; they stay zero-valued on the benign
// short-circuit replies that never touch storage.
type ReplyResult struct {
	Reply          string  `json:"reply"`
	HistorySaved   bool    `json:"historySaved"`
	StorageUsedMB  float64 `json:"storageUsedMB"`
	StorageLimitMB float64 `json:"storageLimitMB"`
	StorageFull    bool    `json:"storageFull"`
}

// ChatService is the reply resolution engine: normalize the message, pick
// the best sentence out of the client's admin info, then decide under the
// storage quota whether the exchange may be persisted. Persistence being
// refused or failing never fails the reply itself.
type ChatService struct {
	clients  ClientStore
	messages MessageStore
	usage    UsageReporter
	matchCfg textmatch.Config
}

func NewChatService(clients ClientStore, messages MessageStore, usage UsageReporter, matchCfg textmatch.Config) *ChatService {
	return &ChatService{
		clients:  clients,
		messages: messages,
		usage:    usage,
		matchCfg: matchCfg,
	}
}

// ResolveReply runs the pipeline for one inbound message. Given identical
// client state and message the reply text is deterministic; only the usage
// metadata depends on accumulated history.
//
// The usage read and the two appends are not atomic: two concurrent
// requests for the same client can both pass the gate and overshoot the
// limit by up to one exchange. That bounded overshoot is accepted; do not
// serialize across clients to tighten it.
func (s *ChatService) ResolveReply(clientID, message string) ReplyResult {
	if clientID == "" {
		return ReplyResult{Reply: ReplyClientIDMissing}
	}
	if strings.TrimSpace(message) == "" {
		return ReplyResult{Reply: ReplyNoMessage}
	}

	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return ReplyResult{Reply: ReplyClientNotFound}
		}
		log.Error().Err(err).Str("clientId", clientID).Msg("Chat: client lookup failed")
		return ReplyResult{Reply: ReplyServerError}
	}

	fallback := client.Fallback
	if fallback == "" {
		fallback = "Sorry, I don't understand."
	}
	reply := textmatch.Reply(message, client.AdminInfo, fallback, s.matchCfg)

	usedBytes, err := s.usage.UsedBytesForClient(client)
	if err != nil {
		log.Error().Err(err).Str("clientId", clientID).Msg("Chat: usage computation failed")
		return ReplyResult{Reply: ReplyServerError}
	}

	// One admission decision covers both prospective rows. Sizes are UTF-8
	// byte lengths, not rune counts.
	userSize := int64(len(message))
	botSize := int64(len(reply))
	admitted := CanAppendHistory(usedBytes, client.StorageLimitMB)

	if admitted {
		expiresAt := retentionExpiry(client, time.Now())
		if err := s.messages.Append(clientID, models.RoleUser, message, userSize, expiresAt); err != nil {
			log.Error().Err(err).Str("clientId", clientID).Msg("Chat: failed to save user message")
			return ReplyResult{Reply: ReplyServerError}
		}
		if err := s.messages.Append(clientID, models.RoleBot, reply, botSize, expiresAt); err != nil {
			log.Error().Err(err).Str("clientId", clientID).Msg("Chat: failed to save bot message")
			return ReplyResult{Reply: ReplyServerError}
		}
	}

	full := !admitted
	if admitted && MBFromBytes(usedBytes+userSize+botSize) >= client.StorageLimitMB {
		full = true
	}

	return ReplyResult{
		Reply:          reply,
		HistorySaved:   admitted,
		StorageUsedMB:  RoundMB(MBFromBytes(usedBytes)),
		StorageLimitMB: client.StorageLimitMB,
		StorageFull:    full,
	}
}

func retentionExpiry(client *models.Client, now time.Time) *time.Time {
	if client.RetentionDays <= 0 {
		return nil
	}
	expiry := now.AddDate(0, 0, client.RetentionDays)
	return &expiry
}
