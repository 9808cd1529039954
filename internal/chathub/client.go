package chathub

import "quickchat/backend/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport so the hub can manage connections uniformly and
// tests can substitute in-memory doubles.
type Client interface {
	// GetConnID returns the opaque connection id assigned at handshake.
	GetConnID() string
	// GetUser returns the identity bound to the connection at handshake.
	// It is the only identity the hub ever trusts for this connection.
	GetUser() models.UserDTO

	// GetSendChannel returns the channel on which the hub queues outbound
	// events for this connection.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the outbound channel. Safe to call more than once.
	Close()
}

// InboundEvent pairs a decoded envelope with the connection it arrived on.
type InboundEvent struct {
	Client Client
	Event  models.Event
}
