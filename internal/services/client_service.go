package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"

	"github.com/google/uuid"
)

// ErrStorageLimitExceeded reports a profile edit that would push the
// client's total storage over its limit. Unlike conversation history,
// which just stops being saved, profile edits are rejected outright.
var ErrStorageLimitExceeded = errors.New("storage limit exceeded")

// ProfileUpdate carries the editable client fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name           *string  `json:"name"`
	AdminInfo      *string  `json:"adminInfo"`
	Fallback       *string  `json:"fallback"`
	BotName        *string  `json:"botName"`
	Avatar         *string  `json:"avatar"`
	Domain         *string  `json:"domain"`
	APIKey         *string  `json:"apiKey"`
	RetentionDays  *int     `json:"retentionDays"`
	StorageLimitMB *float64 `json:"storageLimitMB"`
}

// ClientService wraps tenant registration and profile maintenance. It owns
// the profile-side quota rule; the conversation-side rule lives in the
// reply engine.
type ClientService struct {
	clients  ClientStore
	messages MessageStore
	usage    *UsageService
}

func NewClientService(clients ClientStore, messages MessageStore, usage *UsageService) *ClientService {
	return &ClientService{clients: clients, messages: messages, usage: usage}
}

// Register creates a new client with defaults and a fresh opaque id.
func (s *ClientService) Register(name string) (*models.Client, error) {
	if name == "" {
		name = "New Client"
	}
	client := &models.Client{
		ClientID:       uuid.New().String(),
		Name:           name,
		Fallback:       "Sorry, I don't understand.",
		BotName:        "Chatbot",
		RetentionDays:  365,
		StorageLimitMB: 1024,
	}
	if err := s.clients.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateProfile applies the edit after checking that the prospective new
// total (history already persisted plus the edited profile fields) still
// fits the storage limit. A raised limit in the same update is honored
// before the check.
func (s *ClientService) UpdateProfile(clientID string, update ProfileUpdate) (*models.Client, error) {
	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		return nil, err
	}

	applyProfileUpdate(client, update)

	messageBytes, err := s.messages.SumSizes(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum message sizes: %w", err)
	}
	prospective := messageBytes + s.usage.ProfileBytes(client)
	if !FitsStorageLimit(prospective, client.StorageLimitMB) {
		return nil, ErrStorageLimitExceeded
	}

	if err := s.clients.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func applyProfileUpdate(client *models.Client, update ProfileUpdate) {
	if update.Name != nil {
		client.Name = *update.Name
	}
	if update.AdminInfo != nil {
		client.AdminInfo = *update.AdminInfo
	}
	if update.Fallback != nil {
		client.Fallback = *update.Fallback
	}
	if update.BotName != nil {
		client.BotName = *update.BotName
	}
	if update.Avatar != nil {
		client.Avatar = *update.Avatar
	}
	if update.Domain != nil {
		client.Domain = *update.Domain
	}
	if update.APIKey != nil {
		client.APIKey = *update.APIKey
	}
	if update.RetentionDays != nil {
		client.RetentionDays = *update.RetentionDays
	}
	if update.StorageLimitMB != nil {
		client.StorageLimitMB = *update.StorageLimitMB
	}
}

// StorageStatus summarises a client's consumption for the dashboards.
type StorageStatus struct {
	ClientID      string  `json:"clientId"`
	UsedMB        float64 `json:"usedMB"`
	LimitMB       float64 `json:"limitMB"`
	RemainingMB   float64 `json:"remainingMB"`
	UsedPercent   float64 `json:"usedPercent"`
	Status        string  `json:"status"`
	HistoryPaused bool    `json:"historyPaused"`
	MessageCount  int64   `json:"messageCount"`
}

// Storage builds the dashboard storage report. Status turns "warning" at
// 80% and "danger" at 100%; HistoryPaused mirrors the conversation-side
// gate going shut.
func (s *ClientService) Storage(clientID string) (*StorageStatus, error) {
	client, err := s.clients.FindByClientID(clientID)
	if err != nil {
		return nil, err
	}
	usage, err := s.usage.UsageForClient(client)
	if err != nil {
		return nil, err
	}

	limit := client.StorageLimitMB
	usedPercent := 0.0
	if limit > 0 {
		usedPercent = RoundMB(MBFromBytes(usage.UsedBytes) / limit * 100)
	}

	status := "green"
	switch {
	case usedPercent >= 100:
		status = "danger"
	case usedPercent >= 80:
		status = "warning"
	}

	return &StorageStatus{
		ClientID:      clientID,
		UsedMB:        usage.UsedMB,
		LimitMB:       limit,
		RemainingMB:   RoundMB(limit - usage.UsedMB),
		UsedPercent:   usedPercent,
		Status:        status,
		HistoryPaused: MBFromBytes(usage.UsedBytes) >= limit,
		MessageCount:  usage.MessageCount,
	}, nil
}

// ClearHistory deletes a client's conversation history, either all of it
// or everything older than the given number of days.
func (s *ClientService) ClearHistory(clientID, mode string, days int) error {
	if _, err := s.clients.FindByClientID(clientID); err != nil {
		return err
	}
	switch mode {
	case "all":
		return s.messages.DeleteAll(clientID)
	case "olderThanDays":
		cutoff := time.Now().AddDate(0, 0, -days)
		return s.messages.DeleteOlderThan(clientID, cutoff)
	default:
		return fmt.Errorf("unknown clear-history mode %q", mode)
	}
}
