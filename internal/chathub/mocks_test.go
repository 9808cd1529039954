package chathub_test

import (
	"sync/atomic"
	"time"

	"quickchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
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

// fakeClient is an in-memory chathub.Client. Outbound events are captured
// on Recv for assertions.
type fakeClient struct {
	connID string
	user   models.UserDTO
	Recv   chan models.Event
	closed atomic.Bool
}

func newFakeClient(connID, userID, nickname string) *fakeClient {
	return &fakeClient{
		connID: connID,
		user:   models.UserDTO{ID: userID, Nickname: nickname},
		Recv:   make(chan models.Event, 32),
	}
}

func (c *fakeClient) GetConnID() string                   { return c.connID }
func (c *fakeClient) GetUser() models.UserDTO             { return c.user }
func (c *fakeClient) GetSendChannel() chan<- models.Event { return c.Recv }
func (c *fakeClient) Run()                                {}
func (c *fakeClient) Close()                              { c.closed.Store(true) }

func (c *fakeClient) Closed() bool { return c.closed.Load() }

// drain empties the receive buffer and returns what was queued, in order.
func (c *fakeClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.Recv:
			events = append(events, ev)
		default:
			return events
		}
	}
}
