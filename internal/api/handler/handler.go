package handler

import (
	"quickchat/backend/internal/auth"
	"quickchat/backend/internal/chathub"
	"quickchat/backend/internal/storage"
)

// Handler wires the HTTP surface to the hub, the token service and the store.
type Handler struct {
	Hub     *chathub.ManagerService
	Tokens  *auth.TokenService
	Storage storage.Storage
}

func NewHandler(hub *chathub.ManagerService, tokens *auth.TokenService, s storage.Storage) *Handler {
	return &Handler{Hub: hub, Tokens: tokens, Storage: s}
}
