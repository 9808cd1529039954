package chathub

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"quickchat/backend/internal/models"
	"quickchat/backend/internal/storage"
)

// ManagerService is the connection gateway's event loop. Every registry
// mutation and every fan-out happens on the single Run goroutine, so a
// register (snapshot + subscription) can never observe a half-applied
// concurrent change, and the init snapshot is always queued on a new
// connection's channel before any later broadcast reaches it.
type ManagerService struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	InboundCh    chan InboundEvent

	registry *Registry
	messages *MessageChannel
	storage  storage.Storage
}

func NewManagerService(registry *Registry, messages *MessageChannel, s storage.Storage) *ManagerService {
	return &ManagerService{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		InboundCh:    make(chan InboundEvent),
		registry:     registry,
		messages:     messages,
		storage:      s,
	}
}

// Run is the dispatcher loop. It owns all registry access.
func (m *ManagerService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-m.RegisterCh:
			m.handleRegister(client)
		case client := <-m.UnregisterCh:
			m.handleDisconnect(client)
		case in := <-m.InboundCh:
			m.handleInbound(in)
		}
	}
}

func (m *ManagerService) handleRegister(client Client) {
	user := client.GetUser()

	// History is read before the registry mutation; any send that lands
	// while this read is in flight sits queued on InboundCh and is only
	// broadcast after the snapshot below has been queued to the client.
	history, err := m.messages.History()
	if err != nil {
		log.Printf("ERROR: Failed to load history for %s: %v", user.Nickname, err)
		history = nil
	}

	if evicted := m.registry.Register(client); evicted != nil {
		log.Printf("Evicting previous session for %s", user.Nickname)
		m.broadcast(models.EventUserDisconnected, user, "")
		evicted.Close()
	}

	snapshot := models.InitChatPayload{
		Messages: history,
		Users:    m.registry.OnlineUsers(),
	}
	m.sendTo(client, models.EventInitChat, snapshot)
	m.broadcast(models.EventUserConnected, user, "")
	log.Printf("User connected: %s (%s)", user.Nickname, client.GetConnID())
}

// handleDisconnect tears down a session. Idempotent: the registry reports
// whether the connection was still live, and only a live session produces
// the offline announcement and identity cleanup.
func (m *ManagerService) handleDisconnect(client Client) {
	user, wasOnline := m.registry.Unregister(client.GetConnID())
	client.Close()
	if !wasOnline {
		return
	}

	m.broadcast(models.EventUserDisconnected, user, "")
	log.Printf("User disconnected: %s (%s)", user.Nickname, client.GetConnID())

	// Accounts are connection-scoped: dropping the session releases the
	// nickname by deleting the durable identity record.
	if err := m.storage.DeleteUser(user.ID); err != nil {
		log.Printf("ERROR: Failed to delete user %s: %v", user.ID, err)
	}
}

func (m *ManagerService) handleInbound(in InboundEvent) {
	user := in.Client.GetUser()

	switch in.Event.Event {
	case models.EventNewMessage:
		var payload models.NewMessagePayload
		if err := decodeStrict(in.Event.Payload, &payload); err != nil {
			log.Printf("Malformed newMessage payload from %s: %v", user.ID, err)
			return
		}
		dto, err := m.messages.Send(user, payload.Message)
		if err != nil {
			log.Printf("Rejected message from %s: %v", user.ID, err)
			return
		}
		m.broadcast(models.EventNewMessage, dto, "")

	case models.EventDeleteMessage:
		var payload models.DeleteMessagePayload
		if err := decodeStrict(in.Event.Payload, &payload); err != nil {
			log.Printf("Malformed deleteMessage payload from %s: %v", user.ID, err)
			return
		}
		deleted, err := m.messages.Delete(user.ID, payload.MessageID)
		if err != nil {
			log.Printf("ERROR: Failed to delete message %s: %v", payload.MessageID, err)
			return
		}
		if deleted {
			m.broadcast(models.EventMessageDeleted, models.DeleteMessagePayload{MessageID: payload.MessageID}, "")
		}

	case models.EventIsTyping:
		var payload models.TypingRequest
		if err := decodeStrict(in.Event.Payload, &payload); err != nil {
			log.Printf("Malformed isTyping payload from %s: %v", user.ID, err)
			return
		}
		if m.registry.SetTyping(user.ID, payload.IsTyping) {
			m.broadcast(models.EventIsTyping, models.TypingBroadcast{
				UserID:   user.ID,
				IsTyping: payload.IsTyping,
			}, in.Client.GetConnID())
		}

	default:
		log.Printf("Unknown event %q from %s", in.Event.Event, user.ID)
	}
}

// sendTo queues an event for a single connection.
func (m *ManagerService) sendTo(client Client, name string, payload any) {
	ev, err := models.NewEvent(name, payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s event: %v", name, err)
		return
	}
	select {
	case client.GetSendChannel() <- ev:
	default:
		log.Printf("Send buffer full for %s, dropping connection", client.GetConnID())
		m.handleDisconnect(client)
	}
}

// broadcast fans an event out to every live connection, optionally skipping
// one sender. Clients whose buffers are full are dropped after the fan-out
// rather than blocking the loop on a slow consumer.
func (m *ManagerService) broadcast(name string, payload any, exceptConnID string) {
	ev, err := models.NewEvent(name, payload)
	if err != nil {
		log.Printf("ERROR: Failed to encode %s event: %v", name, err)
		return
	}

	var dropped []Client
	for _, client := range m.registry.Clients() {
		if client.GetConnID() == exceptConnID {
			continue
		}
		select {
		case client.GetSendChannel() <- ev:
		default:
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		log.Printf("Send buffer full for %s, dropping connection", client.GetConnID())
		m.handleDisconnect(client)
	}
}

// decodeStrict unmarshals a payload rejecting unknown fields, so malformed
// or mislabeled shapes fail instead of being half-trusted.
func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
