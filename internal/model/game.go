package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
)

// Game is a named puzzle hosted for players.
type Game struct {
	ID            string
	Name          string
	OwnerID       string // Player who created the game
	Words         []string
	Puzzle        *puzzle.Puzzle
	AvailableFrom *time.Time // nil means open since creation
	AvailableTo   *time.Time // nil means never closes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGame creates a new Game owned by ownerID.
func NewGame(name, ownerID string, p *puzzle.Puzzle) *Game {
	now := time.Now()
	return &Game{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		Words:     p.Words(),
		Puzzle:    p,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwner reports whether playerID created the game.
func (g *Game) IsOwner(playerID string) bool {
	return playerID != "" && g.OwnerID == playerID
}

// Available reports whether the game accepts players at now.
func (g *Game) Available(now time.Time) bool {
	if g.AvailableFrom != nil && now.Before(*g.AvailableFrom) {
		return false
	}
	if g.AvailableTo != nil && now.After(*g.AvailableTo) {
		return false
	}
	return true
}

// ReplacePuzzle swaps in a regenerated board.
func (g *Game) ReplacePuzzle(p *puzzle.Puzzle) {
	g.Puzzle = p
	g.Words = p.Words()
	g.UpdatedAt = time.Now()
}

// GameDTO is the JSON view of a game for one player.
type GameDTO struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	OwnerID       string        `json:"owner_id"`
	IsOwner       bool          `json:"is_owner"`
	Table         puzzle.Record `json:"table"`
	AvailableFrom *time.Time    `json:"available_from,omitempty"`
	AvailableTo   *time.Time    `json:"available_to,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ToDTO builds the view for playerID. Solutions are only shown to the owner.
func (g *Game) ToDTO(playerID string) GameDTO {
	rec := g.Puzzle.Record()
	isOwner := g.IsOwner(playerID)
	if !isOwner {
		rec.Solutions = [][4]int{}
	}
	return GameDTO{
		ID:            g.ID,
		Name:          g.Name,
		OwnerID:       g.OwnerID,
		IsOwner:       isOwner,
		Table:         rec,
		AvailableFrom: g.AvailableFrom,
		AvailableTo:   g.AvailableTo,
		CreatedAt:     g.CreatedAt,
	}
}
