// Package store persists hosted games.
package store

import (
	"context"
	"errors"

	"github.com/kyiku/wordsearch-back/internal/model"
)

var (
	// ErrNotFound is returned when no game has the requested ID.
	ErrNotFound = errors.New("game not found")
	// ErrDuplicateName is returned when another game already uses the name.
	ErrDuplicateName = errors.New("game with given name already exists")
)

// DefaultPageLimit is used when a caller asks for a non-positive page size.
const DefaultPageLimit = 20

// Page is one slice of a game listing, most recent first.
type Page struct {
	Items []*model.Game
	Total int
	Page  int // 1-based
	Limit int
}

// GameStore defines the persistence interface for games.
// Implementations may be backed by memory or SQLite.
type GameStore interface {
	// Save inserts or updates a game.
	Save(ctx context.Context, g *model.Game) error

	// Get retrieves a game by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*model.Game, error)

	// List returns the requested page of games.
	List(ctx context.Context, page, limit int) (Page, error)
}

// normalizePage clamps page and limit to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return page, limit
}
