package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a durable identity record. Accounts are connection-scoped: the
// record is created by the login endpoint and removed when the owning
// connection drops, which frees the nickname for reuse.
type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Nickname  string `gorm:"uniqueIndex;not null" json:"nickname"`
	CreatedAt time.Time
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID
// has not been set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DTO maps the record to its wire representation.
func (u *User) DTO() UserDTO {
	return UserDTO{ID: u.ID, Nickname: u.Nickname}
}
