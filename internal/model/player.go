// Package model provides data models for the application.
package model

import (
	"time"

	"github.com/google/uuid"
)

// WebSocketConn defines the interface for WebSocket connections.
type WebSocketConn interface {
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
	Close() error
}

// Player is an anonymous visitor identified by a session cookie.
type Player struct {
	ID        string    // UUID
	SessionID string    // Session ID (Cookie)
	JoinedAt  time.Time // When the session was created
}

// NewPlayer creates a new Player with a fresh ID.
func NewPlayer() *Player {
	return &Player{
		ID:       uuid.New().String(),
		JoinedAt: time.Now(),
	}
}
