// Package session provides session management functionality.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyiku/wordsearch-back/internal/model"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "session_id"

// sessionEntry holds a player and its creation time for expiry checking.
type sessionEntry struct {
	Player    *model.Player
	CreatedAt time.Time
}

// SessionStore manages player sessions in memory.
type SessionStore struct {
	sessions map[string]*sessionEntry
	mu       sync.RWMutex
	expiry   time.Duration // 0 means no expiry
	now      func() time.Time
}

// NewSessionStore creates a new SessionStore with no expiry.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithExpiry(0)
}

// NewSessionStoreWithExpiry creates a new SessionStore with the specified expiry duration.
func NewSessionStoreWithExpiry(expiry time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		expiry:   expiry,
		now:      time.Now,
	}
}

// Create creates a new session and returns the player and session ID.
func (s *SessionStore) Create() (*model.Player, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := model.NewPlayer()
	sessionID := uuid.New().String()
	player.SessionID = sessionID

	s.sessions[sessionID] = &sessionEntry{
		Player:    player,
		CreatedAt: s.now(),
	}

	return player, sessionID
}

// Get retrieves a player by session ID.
// Returns nil and false if the session does not exist or has expired.
func (s *SessionStore) Get(sessionID string) (*model.Player, bool) {
	s.mu.RLock()
	entry, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if s.expired(entry) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, false
	}

	return entry.Player, true
}

// GetOrCreate returns the player for sessionID, or a new session when it is
// unknown or expired. created reports whether a new session was made.
func (s *SessionStore) GetOrCreate(sessionID string) (player *model.Player, id string, created bool) {
	if sessionID != "" {
		if p, ok := s.Get(sessionID); ok {
			return p, sessionID, false
		}
	}
	p, id := s.Create()
	return p, id, true
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (s *SessionStore) Cleanup() int {
	if s.expiry <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(entry *sessionEntry) bool {
	return s.expiry > 0 && s.now().Sub(entry.CreatedAt) > s.expiry
}
