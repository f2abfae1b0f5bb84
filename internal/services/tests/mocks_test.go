package services_test

import (
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) FindByClientID(clientID string) (*models.Client, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientStore) Create(client *models.Client) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockClientStore) Update(client *models.Client) error {
	args := m.Called(client)
	return args.Error(0)
}

func (m *MockClientStore) DeleteByClientID(clientID string) error {
	args := m.Called(clientID)
	return args.Error(0)
}

func (m *MockClientStore) List() ([]models.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) Append(clientID, role, content string, size int64, expiresAt *time.Time) error {
	args := m.Called(clientID, role, content, size, expiresAt)
	return args.Error(0)
}

func (m *MockMessageStore) SumSizes(clientID string) (int64, error) {
	args := m.Called(clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageStore) Count(clientID string) (int64, error) {
	args := m.Called(clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageStore) Recent(clientID string, limit int) ([]models.Message, error) {
	args := m.Called(clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageStore) DeleteAll(clientID string) error {
	args := m.Called(clientID)
	return args.Error(0)
}

func (m *MockMessageStore) DeleteOlderThan(clientID string, cutoff time.Time) error {
	args := m.Called(clientID, cutoff)
	return args.Error(0)
}

func (m *MockMessageStore) DeleteExpired(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}
