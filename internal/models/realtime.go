package models

import "encoding/json"

// Event names exchanged on the socket, both directions.
const (
	EventInitChat         = "initChat"
	EventNewMessage       = "newMessage"
	EventDeleteMessage    = "deleteMessage"
	EventMessageDeleted   = "messageDeleted"
	EventIsTyping         = "isTyping"
	EventUserConnected    = "userConnected"
	EventUserDisconnected = "userDisconnected"
)

// Event is the JSON envelope carried in every websocket frame:
// {"event": "...", "payload": {...}}. Payload stays raw until the
// event name selects a concrete payload struct.
type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEvent wraps a payload struct into an envelope.
func NewEvent(name string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Event: name, Payload: raw}, nil
}

// UserDTO is the wire shape of an identity.
type UserDTO struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// MessageDTO is the wire shape of a message, author snapshot included.
type MessageDTO struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
	Author    UserDTO `json:"author"`
}

// InitChatPayload is the one-time sync snapshot sent to a freshly
// registered connection.
type InitChatPayload struct {
	Messages []MessageDTO `json:"messages"`
	Users    []UserDTO    `json:"users"`
}

// NewMessagePayload is the client request to post a message.
type NewMessagePayload struct {
	Message string `json:"message"`
}

// DeleteMessagePayload is both the client request and the broadcast
// confirmation for a deletion.
type DeleteMessagePayload struct {
	MessageID string `json:"messageId"`
}

// TypingRequest is the client-side typing toggle.
type TypingRequest struct {
	IsTyping bool `json:"isTyping"`
}

// TypingBroadcast is the fan-out form, carrying the authenticated sender.
type TypingBroadcast struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}
