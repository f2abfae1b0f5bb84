package services

import (
	"errors"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"

	"gorm.io/gorm"
)

// ErrClientNotFound is returned by lookups for an unknown client id.
var ErrClientNotFound = errors.New("client not found")

// DefaultClientStore implements ClientStore on top of gorm.
type DefaultClientStore struct {
	db *gorm.DB
}

func NewClientStore(db *gorm.DB) ClientStore {
	return &DefaultClientStore{db: db}
}

func (s *DefaultClientStore) FindByClientID(clientID string) (*models.Client, error) {
	var client models.Client
	result := s.db.Where("client_id = ?", clientID).First(&client)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, result.Error
	}
	return &client, nil
}

func (s *DefaultClientStore) Create(client *models.Client) error {
	return s.db.Create(client).Error
}

func (s *DefaultClientStore) Update(client *models.Client) error {
	return s.db.Save(client).Error
}

// DeleteByClientID removes the client and cascades over its message
// history in one transaction.
func (s *DefaultClientStore) DeleteByClientID(clientID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("client_id = ?", clientID).Delete(&models.Client{}).Error
	})
}

func (s *DefaultClientStore) List() ([]models.Client, error) {
	var clients []models.Client
	result := s.db.Order("created_at asc").Find(&clients)
	if result.Error != nil {
		return nil, result.Error
	}
	return clients, nil
}
