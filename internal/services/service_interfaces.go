package services

import (
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
)

// ClientStore is the tenant lookup/maintenance surface consumed by the
// reply engine and the dashboard handlers.
type ClientStore interface {
	FindByClientID(clientID string) (*models.Client, error)
	Create(client *models.Client) error
	Update(client *models.Client) error
	DeleteByClientID(clientID string) error
	List() ([]models.Client, error)
}

// MessageStore is the conversation history surface. SumSizes feeds usage
// accounting; Append is the only write path the reply engine uses.
type MessageStore interface {
	Append(clientID, role, content string, size int64, expiresAt *time.Time) error
	SumSizes(clientID string) (int64, error)
	Count(clientID string) (int64, error)
	Recent(clientID string, limit int) ([]models.Message, error)
	DeleteAll(clientID string) error
	DeleteOlderThan(clientID string, cutoff time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}

// UsageReporter computes a tenant's current storage consumption.
// UsedBytesForClient skips the message count for callers that only need
// the admission number.
type UsageReporter interface {
	Usage(clientID string) (UsageReport, error)
	UsageForClient(client *models.Client) (UsageReport, error)
	UsedBytesForClient(client *models.Client) (int64, error)
}
