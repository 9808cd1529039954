package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"quickchat/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	connID string
	user   models.UserDTO
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.Event

	closeOnce sync.Once
}

func NewWebSocketClient(hub *ManagerService, user models.UserDTO, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		connID: uuid.New().String(),
		user:   user,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.Event, sendBufferSize),
	}
}

func (c *WebSocketClient) GetConnID() string                   { return c.connID }
func (c *WebSocketClient) GetUser() models.UserDTO             { return c.user }
func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the Send channel, which stops writePump. The hub may close an
// evicted client it has already replaced while the read pump later reports
// the dead connection, so Close must tolerate being called twice.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump decodes inbound envelopes and hands them to the hub. The deferred
// unregister runs before any resource is released, so the hub always learns
// about the loss of the connection.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.connID, err)
			continue
		}

		// The sender is always the handshake identity; nothing in the
		// payload is trusted to name one.
		c.Hub.InboundCh <- InboundEvent{Client: c, Event: ev}
	}
}

// writePump drains the Send channel into the socket, one frame per event,
// and keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub; say goodbye on the wire.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.connID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
