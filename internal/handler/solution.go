package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/game"
	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/response"
	"github.com/kyiku/wordsearch-back/internal/store"
	"github.com/kyiku/wordsearch-back/internal/websocket"
)

// MaxSubmissions caps the segments accepted in one request.
const MaxSubmissions = 100

// SolutionHandler checks players' answers.
type SolutionHandler struct {
	sessions SessionStoreInterface
	games    store.GameStore
	tracker  *game.Tracker
	events   Broadcaster
	now      func() time.Time
}

// NewSolutionHandler creates a new SolutionHandler.
func NewSolutionHandler(sessions SessionStoreInterface, games store.GameStore, tracker *game.Tracker) *SolutionHandler {
	return &SolutionHandler{
		sessions: sessions,
		games:    games,
		tracker:  tracker,
		now:      time.Now,
	}
}

// SetBroadcaster enables live events.
func (h *SolutionHandler) SetBroadcaster(b Broadcaster) {
	h.events = b
}

// SolutionRequest is one submitted segment.
type SolutionRequest struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r SolutionRequest) segment() geometry.Segment {
	return geometry.Seg(geometry.Vec(r.X1, r.Y1), geometry.Vec(r.X2, r.Y2))
}

// Submit checks a list of segments against the game's solutions.
func (h *SolutionHandler) Submit(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := loadPlayable(c, h.games, player, h.now())
	if g == nil {
		return err
	}

	var req []SolutionRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "body must be a list of {x1, y1, x2, y2}")
	}
	if len(req) == 0 || len(req) > MaxSubmissions {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "submit between 1 and 100 segments")
	}

	segs := make([]geometry.Segment, len(req))
	for i, r := range req {
		segs[i] = r.segment()
	}

	res := h.tracker.Submit(g, player.ID, segs)
	h.publish(g.ID, player.ID, res)

	return response.Success(c, map[string]interface{}{
		"results":  res.Results,
		"found":    res.Found,
		"total":    res.Total,
		"finished": res.Finished,
	})
}

// List returns the caller's progress in the game.
func (h *SolutionHandler) List(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := loadPlayable(c, h.games, player, h.now())
	if g == nil {
		return err
	}

	found := h.tracker.Found(g.ID, player.ID)
	data := map[string]interface{}{
		"found":    flatten(found),
		"total":    len(g.Puzzle.Solutions()),
		"finished": false,
	}
	if p, ok := h.tracker.Participation(g.ID, player.ID); ok {
		data["finished"] = p.Finished()
		data["started_at"] = p.StartTime
		if p.Finished() {
			data["duration_ms"] = p.Duration().Milliseconds()
		}
	}
	return response.Success(c, data)
}

func (h *SolutionHandler) publish(gameID, playerID string, res game.SubmitResult) {
	if h.events == nil {
		return
	}
	for _, s := range res.NewlyFound {
		flat := s.Flat()
		h.events.Broadcast(gameID, websocket.Event{
			Type:     websocket.EventWordFound,
			PlayerID: playerID,
			Segment:  &flat,
			Found:    res.Found,
			Total:    res.Total,
		})
	}
	if res.JustFinished {
		ev := websocket.Event{Type: websocket.EventGameFinished, PlayerID: playerID, Found: res.Found, Total: res.Total}
		if p, ok := h.tracker.Participation(gameID, playerID); ok {
			ev.DurationMs = p.Duration().Milliseconds()
		}
		h.events.Broadcast(gameID, ev)
		log.Info().Str("game_id", gameID).Str("player_id", playerID).Int64("duration_ms", ev.DurationMs).Msg("game finished")
	}
}
