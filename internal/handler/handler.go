package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/wordsearch-back/internal/model"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/session"
	"github.com/kyiku/wordsearch-back/internal/websocket"
)

// Input limits for generation requests.
const (
	MaxWords      = 40
	MaxWordLength = 24
	MaxNameLength = 80
)

// SessionStoreInterface defines the interface for session storage.
type SessionStoreInterface interface {
	Get(sessionID string) (*model.Player, bool)
	GetOrCreate(sessionID string) (*model.Player, string, bool)
}

// GenerateFunc builds a puzzle from words; puzzle.FromWords in production.
type GenerateFunc func(words []string, maxAttempts int) (*puzzle.Puzzle, error)

// Archiver stores puzzles outside the database.
type Archiver interface {
	SavePuzzle(ctx context.Context, gameID string, p *puzzle.Puzzle) (string, error)
	UploadImage(ctx context.Context, gameID string, p *puzzle.Puzzle) (string, error)
}

// WordSuggester proposes words for a theme.
type WordSuggester interface {
	SuggestWords(ctx context.Context, theme string, count int) ([]string, error)
}

// Broadcaster pushes events to a game's live subscribers.
type Broadcaster interface {
	Broadcast(gameID string, ev websocket.Event) int
}

// currentPlayer returns the player behind the session cookie, starting a new
// session (and setting the cookie) when there is none.
func currentPlayer(c echo.Context, sessions SessionStoreInterface) *model.Player {
	var sessionID string
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != nil {
		sessionID = cookie.Value
	}

	player, id, created := sessions.GetOrCreate(sessionID)
	if created {
		c.SetCookie(&http.Cookie{
			Name:     session.CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return player
}

// normalizeWords trims and lowercases words. Empty words are kept so the
// generator can reject them.
func normalizeWords(words []string) ([]string, string) {
	if len(words) > MaxWords {
		return nil, "too many words"
	}
	out := make([]string, len(words))
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if len([]rune(w)) > MaxWordLength {
			return nil, "word too long: " + w
		}
		out[i] = w
	}
	return out, ""
}
