package services

import (
	"errors"
	"fmt"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
)

// QuotaField names a mutable client profile field whose byte size counts
// toward storage usage alongside conversation history. The active set is
// versioned configuration, injected at construction time.
type QuotaField string

const (
	FieldAdminInfo  QuotaField = "admin_info"
	FieldBotName    QuotaField = "bot_name"
	FieldAvatar     QuotaField = "avatar"
	FieldWidgetCode QuotaField = "widget_code"
)

// DefaultQuotaFields is the field set counted since profile storage was
// folded into the quota: a client who pastes a huge knowledge block spends
// conversation budget on it.
var DefaultQuotaFields = []QuotaField{FieldAdminInfo, FieldBotName, FieldAvatar, FieldWidgetCode}

// UsageReport is a derived snapshot, never stored. UsedMB is rounded to
// two decimals for display; admission decisions use UsedBytes.
type UsageReport struct {
	UsedBytes    int64   `json:"usedBytes"`
	UsedMB       float64 `json:"usedMB"`
	MessageCount int64   `json:"messageCount"`
}

// UsageService sums persisted message sizes plus the quota-counted profile
// fields of the client record.
type UsageService struct {
	clients  ClientStore
	messages MessageStore
	fields   []QuotaField
}

func NewUsageService(clients ClientStore, messages MessageStore, fields []QuotaField) *UsageService {
	return &UsageService{clients: clients, messages: messages, fields: fields}
}

// ProfileBytes returns the UTF-8 byte length of the client's quota-counted
// fields under the configured field set.
func (s *UsageService) ProfileBytes(client *models.Client) int64 {
	var total int64
	for _, f := range s.fields {
		switch f {
		case FieldAdminInfo:
			total += int64(len(client.AdminInfo))
		case FieldBotName:
			total += int64(len(client.BotName))
		case FieldAvatar:
			total += int64(len(client.Avatar))
		case FieldWidgetCode:
			total += int64(len(client.WidgetCode))
		}
	}
	return total
}

// Usage reports current consumption for a client id. An unknown client is
// not an error here: it reports as zero, since write paths are expected to
// have validated existence already.
func (s *UsageService) Usage(clientID string) (UsageReport, error) {
	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return UsageReport{}, nil
		}
		return UsageReport{}, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	return s.UsageForClient(client)
}

// UsageForClient reports consumption for an already-loaded client record,
// saving the redundant lookup on hot paths.
func (s *UsageService) UsageForClient(client *models.Client) (UsageReport, error) {
	used, err := s.UsedBytesForClient(client)
	if err != nil {
		return UsageReport{}, err
	}
	count, err := s.messages.Count(client.ClientID)
	if err != nil {
		return UsageReport{}, fmt.Errorf("failed to count messages: %w", err)
	}

	return UsageReport{
		UsedBytes:    used,
		UsedMB:       RoundMB(MBFromBytes(used)),
		MessageCount: count,
	}, nil
}

// UsedBytesForClient returns only the admission number: message bytes plus
// the quota-counted profile fields. One aggregate query, no message count,
// for the per-message hot path.
func (s *UsageService) UsedBytesForClient(client *models.Client) (int64, error) {
	messageBytes, err := s.messages.SumSizes(client.ClientID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum message sizes: %w", err)
	}
	return messageBytes + s.ProfileBytes(client), nil
}
