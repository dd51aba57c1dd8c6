// Package websocket provides per-game live event delivery over WebSocket.
package websocket

import (
	"encoding/json"

	"github.com/kyiku/wordsearch-back/internal/model"
)

// Event types sent to and received from clients.
const (
	EventPing             = "ping"
	EventPong             = "pong"
	EventWordFound        = "wordFound"
	EventGameFinished     = "gameFinished"
	EventBoardRegenerated = "boardRegenerated"
	EventGameClosed       = "gameClosed"
)

// Event is a message pushed to game subscribers.
type Event struct {
	Type       string  `json:"type"`
	GameID     string  `json:"game_id,omitempty"`
	PlayerID   string  `json:"player_id,omitempty"`
	Segment    *[4]int `json:"segment,omitempty"`
	Found      int     `json:"found,omitempty"`
	Total      int     `json:"total,omitempty"`
	DurationMs int64   `json:"duration_ms,omitempty"`
}

// PingHandler answers client pings on a connection.
type PingHandler struct {
	conn model.WebSocketConn
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(conn model.WebSocketConn) *PingHandler {
	return &PingHandler{
		conn: conn,
	}
}

// Handle processes a message and returns true if it was a ping message.
func (h *PingHandler) Handle(message []byte) bool {
	if !IsPingMessage(message) {
		return false
	}

	_ = h.conn.WriteJSON(Event{Type: EventPong})
	return true
}

// IsPingMessage checks if a message is a ping message without processing it.
func IsPingMessage(message []byte) bool {
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(message, &msg); err != nil {
		return false
	}
	return msg.Type == EventPing
}
