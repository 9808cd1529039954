package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"quickchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNicknameTaken is returned by CreateUser when the nickname already
// has a live owner.
var ErrNicknameTaken = errors.New("nickname already taken")

// Storage is the durable store consumed by the chat core. Lookups return
// (nil, nil) when the record does not exist; errors are reserved for the
// store itself failing.
type Storage interface {
	CreateUser(nickname string) (*models.User, error)
	FindUserByNickname(nickname string) (*models.User, error)
	DeleteUser(id string) error
	ListUsers() ([]models.User, error)
	PurgeUsers() (int64, error)

	CreateMessage(authorID, authorNickname, body string) (*models.Message, error)
	FindMessageByID(id string) (*models.Message, error)
	DeleteMessage(id string) error
	ListMessagesOrderedByCreation() ([]models.Message, error)
	PurgeMessages() (int64, error)

	IsUserBanned(nickname string) (bool, error)
	BanUser(nickname string, duration time.Duration) error
	UnbanUser(nickname string) error
}

// Service backs Storage with PostgreSQL (identity and message records)
// and Redis (ban flags).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser inserts a new identity record. The unique index on nickname
// is the authority on uniqueness; a duplicate insert maps to ErrNicknameTaken.
func (s *Service) CreateUser(nickname string) (*models.User, error) {
	user := &models.User{Nickname: nickname}
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNicknameTaken
		}
		log.Printf("ERROR: Failed to create user %q: %v", nickname, err)
		return nil, err
	}
	return user, nil
}

func (s *Service) FindUserByNickname(nickname string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("nickname = ?", nickname).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) DeleteUser(id string) error {
	return s.DB.Delete(&models.User{}, "id = ?", id).Error
}

func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PurgeUsers removes every identity record. Run at boot: accounts are
// connection-scoped, so anything on disk belongs to a previous process
// and would keep its nickname reserved forever.
func (s *Service) PurgeUsers() (int64, error) {
	result := s.DB.Where("1 = 1").Delete(&models.User{})
	return result.RowsAffected, result.Error
}

// CreateMessage persists a message with the author's nickname snapshotted.
// ID and CreatedAt are assigned here, never by the caller.
func (s *Service) CreateMessage(authorID, authorNickname, body string) (*models.Message, error) {
	msg := &models.Message{
		Body:           body,
		AuthorID:       authorID,
		AuthorNickname: authorNickname,
	}
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message from %s: %v", authorID, err)
		return nil, err
	}
	return msg, nil
}

func (s *Service) FindMessageByID(id string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) DeleteMessage(id string) error {
	return s.DB.Delete(&models.Message{}, "id = ?", id).Error
}

// ListMessagesOrderedByCreation returns the full history, oldest first.
func (s *Service) ListMessagesOrderedByCreation() ([]models.Message, error) {
	var messages []models.Message
	if err := s.DB.Order("created_at asc").Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to load message history: %v", err)
		return nil, err
	}
	return messages, nil
}

func (s *Service) PurgeMessages() (int64, error) {
	result := s.DB.Where("1 = 1").Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

// IsUserBanned checks the Redis ban flag for a nickname.
func (s *Service) IsUserBanned(nickname string) (bool, error) {
	status, err := s.Redis.Get(s.Ctx, banKey(nickname)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// BanUser sets the ban flag. A zero duration means the ban does not expire.
func (s *Service) BanUser(nickname string, duration time.Duration) error {
	return s.Redis.Set(s.Ctx, banKey(nickname), "1", duration).Err()
}

func (s *Service) UnbanUser(nickname string) error {
	return s.Redis.Del(s.Ctx, banKey(nickname)).Err()
}

func banKey(nickname string) string {
	return "ban:" + nickname
}
