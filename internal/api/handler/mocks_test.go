package handler_test

import (
	"time"

	"quickchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface for
// handler tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(nickname string) (*models.User, error) {
	args := m.Called(nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) FindUserByNickname(nickname string) (*models.User, error) {
	args := m.Called(nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) DeleteUser(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) PurgeUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateMessage(authorID, authorNickname, body string) (*models.Message, error) {
	args := m.Called(authorID, authorNickname, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) FindMessageByID(id string) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) DeleteMessage(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListMessagesOrderedByCreation() ([]models.Message, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) PurgeMessages() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) IsUserBanned(nickname string) (bool, error) {
	args := m.Called(nickname)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) BanUser(nickname string, duration time.Duration) error {
	args := m.Called(nickname, duration)
	return args.Error(0)
}

func (m *MockStorage) UnbanUser(nickname string) error {
	args := m.Called(nickname)
	return args.Error(0)
}
