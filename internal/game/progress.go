// Package game tracks players' progress through hosted puzzles.
package game

import (
	"sort"
	"sync"
	"time"

	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/model"
)

// SubmitResult is the outcome of one solution submission.
type SubmitResult struct {
	Results      []bool             // One entry per submitted segment
	NewlyFound   []geometry.Segment // Canonical segments found by this submission
	Found        int                // Solutions found so far
	Total        int                // Solutions in the puzzle
	Finished     bool               // Every solution has been found
	JustFinished bool               // This submission found the last one
}

type key struct {
	gameID   string
	playerID string
}

type progress struct {
	found         map[geometry.Segment]struct{}
	participation model.Participation
}

// Tracker records which solutions every player has found in every game.
type Tracker struct {
	mu      sync.RWMutex
	entries map[key]*progress
	now     func() time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[key]*progress),
		now:     time.Now,
	}
}

// entry returns the progress for k, creating it. Callers hold mu.
func (t *Tracker) entry(k key) *progress {
	p, ok := t.entries[k]
	if !ok {
		p = &progress{
			found:         make(map[geometry.Segment]struct{}),
			participation: model.Participation{GameID: k.gameID, PlayerID: k.playerID},
		}
		t.entries[k] = p
	}
	return p
}

// Begin marks the player as having started the game.
func (t *Tracker) Begin(gameID, playerID string) model.Participation {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.entry(key{gameID, playerID})
	p.participation.Start(t.now())
	return p.participation
}

// Submit checks submitted segments against the game's puzzle. A segment counts
// as correct when it was found before or is one of the puzzle's solutions, in
// either orientation. Finding the last solution ends the participation.
func (t *Tracker) Submit(g *model.Game, playerID string, submitted []geometry.Segment) SubmitResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	p := t.entry(key{g.ID, playerID})
	p.participation.Start(now)

	res := SubmitResult{
		Results: make([]bool, 0, len(submitted)),
		Total:   len(g.Puzzle.Solutions()),
	}
	for _, s := range submitted {
		c := s.Canonical()
		if _, ok := p.found[c]; ok {
			res.Results = append(res.Results, true)
			continue
		}
		if g.Puzzle.HasSolution(c) {
			p.found[c] = struct{}{}
			res.NewlyFound = append(res.NewlyFound, c)
			res.Results = append(res.Results, true)
			continue
		}
		res.Results = append(res.Results, false)
	}

	res.Found = len(p.found)
	if res.Found == res.Total && !p.participation.Finished() {
		p.participation.Finish(now)
		res.JustFinished = true
	}
	res.Finished = p.participation.Finished()
	return res
}

// Found returns the player's found solutions in a stable order.
func (t *Tracker) Found(gameID, playerID string) []geometry.Segment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.entries[key{gameID, playerID}]
	if !ok {
		return []geometry.Segment{}
	}
	out := make([]geometry.Segment, 0, len(p.found))
	for s := range p.found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start.Less(out[j].Start)
		}
		return out[i].End.Less(out[j].End)
	})
	return out
}

// Participation returns the player's participation in the game, if any.
func (t *Tracker) Participation(gameID, playerID string) (model.Participation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.entries[key{gameID, playerID}]
	if !ok {
		return model.Participation{}, false
	}
	return p.participation, true
}

// ResetGame forgets all progress in a game, e.g. after its board was regenerated.
func (t *Tracker) ResetGame(gameID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k := range t.entries {
		if k.gameID == gameID {
			delete(t.entries, k)
		}
	}
}
