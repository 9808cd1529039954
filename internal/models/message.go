package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a persisted chat message. AuthorNickname is a snapshot taken
// at creation time, not a foreign key: it stays readable after the author's
// identity record has been deleted.
type Message struct {
	ID             string    `gorm:"primaryKey"`
	Body           string    `gorm:"type:text;not null"`
	AuthorID       string    `gorm:"type:text;not null;index"`
	AuthorNickname string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// DTO maps the record to its wire representation. Timestamps go out as
// RFC 3339 strings in UTC.
func (m *Message) DTO() MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Message:   m.Body,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
		Author:    UserDTO{ID: m.AuthorID, Nickname: m.AuthorNickname},
	}
}
