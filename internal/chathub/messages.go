package chathub

import (
	"errors"
	"strings"

	"quickchat/backend/internal/models"
	"quickchat/backend/internal/storage"
)

// ErrEmptyMessage rejects a send whose body is empty after trimming.
var ErrEmptyMessage = errors.New("message body is empty")

// MessageChannel validates and persists message lifecycle operations.
// Fan-out of the results is the hub's job; this type never touches
// connections.
type MessageChannel struct {
	Storage storage.Storage
}

func NewMessageChannel(s storage.Storage) *MessageChannel {
	return &MessageChannel{Storage: s}
}

// Send persists a new message for the given author. The author's nickname
// is snapshotted into the record, and id/createdAt are server-assigned.
func (mc *MessageChannel) Send(author models.UserDTO, body string) (models.MessageDTO, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.MessageDTO{}, ErrEmptyMessage
	}
	msg, err := mc.Storage.CreateMessage(author.ID, author.Nickname, body)
	if err != nil {
		return models.MessageDTO{}, err
	}
	return msg.DTO(), nil
}

// Delete removes a message if and only if the requester is its recorded
// author. Unknown ids and foreign messages report deleted=false with no
// side effect; the wire protocol stays silent about both.
func (mc *MessageChannel) Delete(userID, messageID string) (deleted bool, err error) {
	msg, err := mc.Storage.FindMessageByID(messageID)
	if err != nil {
		return false, err
	}
	if msg == nil || msg.AuthorID != userID {
		return false, nil
	}
	if err := mc.Storage.DeleteMessage(messageID); err != nil {
		return false, err
	}
	return true, nil
}

// History returns the full message history in creation order, mapped to
// wire DTOs for the init snapshot.
func (mc *MessageChannel) History() ([]models.MessageDTO, error) {
	records, err := mc.Storage.ListMessagesOrderedByCreation()
	if err != nil {
		return nil, err
	}
	messages := make([]models.MessageDTO, 0, len(records))
	for i := range records {
		messages = append(messages, records[i].DTO())
	}
	return messages, nil
}
