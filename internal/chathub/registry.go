package chathub

import "quickchat/backend/internal/models"

type session struct {
	client Client
	user   models.UserDTO
}

// Registry is the in-memory authority for who is online. It holds the
// connection-to-identity bindings and the typing set. All methods are
// plain map operations with no suspension points; they are only called
// from the hub goroutine, so no locking is needed.
type Registry struct {
	sessions map[string]*session // conn id -> session
	byUser   map[string]string   // user id -> conn id
	typing   map[string]struct{} // user ids currently typing
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		byUser:   make(map[string]string),
		typing:   make(map[string]struct{}),
	}
}

// Register binds a connection to its identity. Single-session-per-user is
// enforced with an evict-prior policy: when the identity is already online,
// the previous session is removed and its client returned so the caller can
// announce the disconnect and close the transport.
func (r *Registry) Register(c Client) (evicted Client) {
	user := c.GetUser()
	if oldConnID, online := r.byUser[user.ID]; online {
		if old, ok := r.sessions[oldConnID]; ok {
			evicted = old.client
		}
		delete(r.sessions, oldConnID)
		delete(r.typing, user.ID)
	}
	r.sessions[c.GetConnID()] = &session{client: c, user: user}
	r.byUser[user.ID] = c.GetConnID()
	return evicted
}

// Unregister removes the session for a connection. Idempotent: unknown or
// already-replaced connection ids report wasOnline=false and change nothing.
// Typing membership never outlives the session.
func (r *Registry) Unregister(connID string) (user models.UserDTO, wasOnline bool) {
	sess, ok := r.sessions[connID]
	if !ok {
		return models.UserDTO{}, false
	}
	delete(r.sessions, connID)
	delete(r.byUser, sess.user.ID)
	delete(r.typing, sess.user.ID)
	return sess.user, true
}

// SetTyping updates the typing set. Offline identities are ignored. The
// return value reports whether membership actually flipped, so callers can
// skip re-broadcasting an unchanged state.
func (r *Registry) SetTyping(userID string, isTyping bool) (changed bool) {
	if _, online := r.byUser[userID]; !online {
		return false
	}
	_, typing := r.typing[userID]
	if typing == isTyping {
		return false
	}
	if isTyping {
		r.typing[userID] = struct{}{}
	} else {
		delete(r.typing, userID)
	}
	return true
}

// IsTyping reports typing membership.
func (r *Registry) IsTyping(userID string) bool {
	_, ok := r.typing[userID]
	return ok
}

// OnlineUsers snapshots the online set.
func (r *Registry) OnlineUsers() []models.UserDTO {
	users := make([]models.UserDTO, 0, len(r.sessions))
	for _, sess := range r.sessions {
		users = append(users, sess.user)
	}
	return users
}

// Clients snapshots the live connections for fan-out.
func (r *Registry) Clients() []Client {
	clients := make([]Client, 0, len(r.sessions))
	for _, sess := range r.sessions {
		clients = append(clients, sess.client)
	}
	return clients
}
