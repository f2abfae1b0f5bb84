package services

import (
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"

	"gorm.io/gorm"
)

// DefaultMessageStore implements MessageStore on top of gorm.
type DefaultMessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) MessageStore {
	return &DefaultMessageStore{db: db}
}

func (s *DefaultMessageStore) Append(clientID, role, content string, size int64, expiresAt *time.Time) error {
	message := &models.Message{
		ClientID:  clientID,
		Role:      role,
		Content:   content,
		Size:      size,
		ExpiresAt: expiresAt,
	}
	return s.db.Create(message).Error
}

func (s *DefaultMessageStore) SumSizes(clientID string) (int64, error) {
	var total int64
	result := s.db.Model(&models.Message{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(size), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (s *DefaultMessageStore) Count(clientID string) (int64, error) {
	var count int64
	result := s.db.Model(&models.Message{}).Where("client_id = ?", clientID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *DefaultMessageStore) Recent(clientID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	result := s.db.Where("client_id = ?", clientID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}
	return messages, nil
}

func (s *DefaultMessageStore) DeleteAll(clientID string) error {
	return s.db.Where("client_id = ?", clientID).Delete(&models.Message{}).Error
}

func (s *DefaultMessageStore) DeleteOlderThan(clientID string, cutoff time.Time) error {
	return s.db.Where("client_id = ? AND created_at < ?", clientID, cutoff).
		Delete(&models.Message{}).Error
}

// DeleteExpired removes every message past its retention expiry,
// regardless of client. Used by the retention sweep.
func (s *DefaultMessageStore) DeleteExpired(now time.Time) (int64, error) {
	result := s.db.Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&models.Message{})
	return result.RowsAffected, result.Error
}
