package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/model"
)

// Subscriber is one connection watching a game. Writes are serialised so the
// hub and the connection's own read loop can both send on it.
type Subscriber struct {
	PlayerID string
	GameID   string

	mu   sync.Mutex
	conn model.WebSocketConn
}

// WriteMessage implements model.WebSocketConn.
func (s *Subscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// WriteJSON implements model.WebSocketConn.
func (s *Subscriber) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Close implements model.WebSocketConn.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Hub tracks the subscribers of every game.
type Hub struct {
	games map[string]map[*Subscriber]struct{}
	mu    sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		games: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers conn for the events of gameID.
func (h *Hub) Subscribe(gameID, playerID string, conn model.WebSocketConn) *Subscriber {
	sub := &Subscriber{PlayerID: playerID, GameID: gameID, conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.games[gameID]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.games[gameID] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes sub. It is safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.games[sub.GameID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.games, sub.GameID)
	}
}

// Count returns the number of subscribers of gameID.
func (h *Hub) Count(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

// Broadcast sends ev to every subscriber of gameID and returns how many
// received it. Subscribers whose write fails are dropped and closed.
func (h *Hub) Broadcast(gameID string, ev Event) int {
	if ev.GameID == "" {
		ev.GameID = gameID
	}

	h.mu.RLock()
	targets := make([]*Subscriber, 0, len(h.games[gameID]))
	for sub := range h.games[gameID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, sub := range targets {
		if err := sub.WriteJSON(ev); err != nil {
			log.Warn().Err(err).Str("game_id", gameID).Str("player_id", sub.PlayerID).Msg("dropping websocket subscriber")
			h.Unsubscribe(sub)
			_ = sub.Close()
			continue
		}
		delivered++
	}
	return delivered
}
