package services_test

import (
	"errors"
	"testing"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/models"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"
	"github.com/lovelycreation-pixel/chatbot-backend/internal/utils/textmatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const mb = 1024 * 1024

func newTestClient() *models.Client {
	return &models.Client{
		ClientID:       "client-1",
		Name:           "Acme",
		AdminInfo:      "We ship worldwide. Returns are accepted within 30 days. Support is available 24/7.",
		Fallback:       "Sorry, I don't understand.",
		StorageLimitMB: 100,
	}
}

func newEngine(clients *MockClientStore, messages *MockMessageStore) *services.ChatService {
	usage := services.NewUsageService(clients, messages, services.DefaultQuotaFields)
	return services.NewChatService(clients, messages, usage, textmatch.NewConfig())
}

func TestResolveReplyValidation(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	t.Run("missing client id", func(t *testing.T) {
		result := engine.ResolveReply("", "hello")
		assert.Equal(t, services.ReplyClientIDMissing, result.Reply)
		assert.False(t, result.HistorySaved)
		assert.Zero(t, result.StorageUsedMB)
	})

	t.Run("blank message", func(t *testing.T) {
		result := engine.ResolveReply("client-1", "   \t ")
		assert.Equal(t, services.ReplyNoMessage, result.Reply)
		assert.False(t, result.HistorySaved)
	})

	// Neither path may touch the stores.
	mockClients.AssertNotCalled(t, "FindByClientID", mock.Anything)
	mockMessages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveReplyUnknownClient(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	mockClients.On("FindByClientID", "ghost").Return(nil, services.ErrClientNotFound).Once()

	result := engine.ResolveReply("ghost", "hello")

	assert.Equal(t, services.ReplyClientNotFound, result.Reply)
	assert.False(t, result.HistorySaved)
	mockMessages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockClients.AssertExpectations(t)
}

func TestResolveReplyMatchAndPersist(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	client := newTestClient()
	message := "What is your return policy?"
	wantReply := "Returns are accepted within 30 days"

	mockClients.On("FindByClientID", "client-1").Return(client, nil).Once()
	mockMessages.On("SumSizes", "client-1").Return(int64(0), nil).Once()
	mockMessages.On("Append", "client-1", models.RoleUser, message, int64(len(message)), mock.Anything).Return(nil).Once()
	mockMessages.On("Append", "client-1", models.RoleBot, wantReply, int64(len(wantReply)), mock.Anything).Return(nil).Once()

	result := engine.ResolveReply("client-1", message)

	assert.Equal(t, wantReply, result.Reply)
	assert.True(t, result.HistorySaved)
	assert.False(t, result.StorageFull)
	assert.Equal(t, 100.0, result.StorageLimitMB)
	mockClients.AssertExpectations(t)
	mockMessages.AssertExpectations(t)
	// The hot path reads one aggregate; it never counts messages.
	mockMessages.AssertNotCalled(t, "Count", mock.Anything)
}

func TestResolveReplyFallback(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	client := newTestClient()
	mockClients.On("FindByClientID", "client-1").Return(client, nil)
	mockMessages.On("SumSizes", "client-1").Return(int64(0), nil)
	mockMessages.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	t.Run("no sentence matches", func(t *testing.T) {
		result := engine.ResolveReply("client-1", "xyz")
		assert.Equal(t, client.Fallback, result.Reply)
		assert.True(t, result.HistorySaved)
	})

	t.Run("stop-words-only message", func(t *testing.T) {
		result := engine.ResolveReply("client-1", "how does the")
		assert.Equal(t, client.Fallback, result.Reply)
	})
}

func TestResolveReplyDeterministic(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	client := newTestClient()
	mockClients.On("FindByClientID", "client-1").Return(client, nil)
	mockMessages.On("SumSizes", "client-1").Return(int64(0), nil)
	mockMessages.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first := engine.ResolveReply("client-1", "Do you ship worldwide?")
	second := engine.ResolveReply("client-1", "Do you ship worldwide?")
	assert.Equal(t, first.Reply, second.Reply)
}

func TestResolveReplyQuota(t *testing.T) {
	message := "What is your return policy?"
	wantReply := "Returns are accepted within 30 days"

	t.Run("just under the limit is admitted", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		client := newTestClient()
		// Message history alone sits at ~99.99 MB; profile fields add a
		// little more but stay under the 100 MB limit.
		profileBytes := int64(len(client.AdminInfo) + len(client.BotName) + len(client.Avatar) + len(client.WidgetCode))
		almostFull := 99.99 * float64(mb)
		historyBytes := int64(almostFull) - profileBytes

		mockClients.On("FindByClientID", "client-1").Return(client, nil).Once()
		mockMessages.On("SumSizes", "client-1").Return(historyBytes, nil).Once()
		mockMessages.On("Append", "client-1", models.RoleUser, message, int64(len(message)), mock.Anything).Return(nil).Once()
		mockMessages.On("Append", "client-1", models.RoleBot, wantReply, int64(len(wantReply)), mock.Anything).Return(nil).Once()

		result := engine.ResolveReply("client-1", message)

		assert.True(t, result.HistorySaved)
		assert.Equal(t, wantReply, result.Reply)
		assert.Equal(t, 99.99, result.StorageUsedMB)
		mockMessages.AssertExpectations(t)
	})

	t.Run("at the limit is refused but still replies", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		client := newTestClient()
		profileBytes := int64(len(client.AdminInfo) + len(client.BotName) + len(client.Avatar) + len(client.WidgetCode))
		historyBytes := int64(100*mb) - profileBytes

		mockClients.On("FindByClientID", "client-1").Return(client, nil).Once()
		mockMessages.On("SumSizes", "client-1").Return(historyBytes, nil).Once()

		result := engine.ResolveReply("client-1", message)

		assert.Equal(t, wantReply, result.Reply)
		assert.False(t, result.HistorySaved)
		assert.True(t, result.StorageFull)
		assert.Equal(t, 100.0, result.StorageUsedMB)
		mockMessages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile bytes count toward the quota", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		client := newTestClient()
		// Tiny limit: the knowledge text alone fills it.
		client.StorageLimitMB = services.MBFromBytes(int64(len(client.AdminInfo)))

		mockClients.On("FindByClientID", "client-1").Return(client, nil).Once()
		mockMessages.On("SumSizes", "client-1").Return(int64(0), nil).Once()

		result := engine.ResolveReply("client-1", message)

		assert.Equal(t, wantReply, result.Reply)
		assert.False(t, result.HistorySaved)
		assert.True(t, result.StorageFull)
	})
}

func TestResolveReplyUTF8Sizing(t *testing.T) {
	mockClients := new(MockClientStore)
	mockMessages := new(MockMessageStore)
	engine := newEngine(mockClients, mockMessages)

	client := newTestClient()
	message := "café"
	assert.Greater(t, len(message), len([]rune(message)))

	mockClients.On("FindByClientID", "client-1").Return(client, nil).Once()
	mockMessages.On("SumSizes", "client-1").Return(int64(0), nil).Once()
	mockMessages.On("Append", "client-1", models.RoleUser, message, int64(5), mock.Anything).Return(nil).Once()
	mockMessages.On("Append", "client-1", models.RoleBot, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	result := engine.ResolveReply("client-1", message)

	assert.True(t, result.HistorySaved)
	mockMessages.AssertExpectations(t)
}

func TestResolveReplyStorageFailures(t *testing.T) {
	t.Run("lookup failure degrades to server error reply", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		mockClients.On("FindByClientID", "client-1").Return(nil, errors.New("connection refused")).Once()

		result := engine.ResolveReply("client-1", "hello")
		assert.Equal(t, services.ReplyServerError, result.Reply)
		assert.False(t, result.HistorySaved)
	})

	t.Run("usage failure degrades to server error reply", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		mockClients.On("FindByClientID", "client-1").Return(newTestClient(), nil).Once()
		mockMessages.On("SumSizes", "client-1").Return(int64(0), errors.New("timeout")).Once()

		result := engine.ResolveReply("client-1", "hello")
		assert.Equal(t, services.ReplyServerError, result.Reply)
	})

	t.Run("append failure degrades to server error reply", func(t *testing.T) {
		mockClients := new(MockClientStore)
		mockMessages := new(MockMessageStore)
		engine := newEngine(mockClients, mockMessages)

		mockClients.On("FindByClientID", "client-1").Return(newTestClient(), nil).Once()
		mockMessages.On("SumSizes", "client-1").Return(int64(0), nil).Once()
		mockMessages.On("Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		result := engine.ResolveReply("client-1", "hello")
		assert.Equal(t, services.ReplyServerError, result.Reply)
	})
}
