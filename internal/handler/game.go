package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/game"
	"github.com/kyiku/wordsearch-back/internal/geometry"
	"github.com/kyiku/wordsearch-back/internal/model"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/render"
	"github.com/kyiku/wordsearch-back/internal/response"
	"github.com/kyiku/wordsearch-back/internal/store"
	"github.com/kyiku/wordsearch-back/internal/websocket"
)

// GameHandler handles hosted games.
type GameHandler struct {
	sessions    SessionStoreInterface
	games       store.GameStore
	tracker     *game.Tracker
	generate    GenerateFunc
	maxAttempts int
	archive     Archiver
	events      Broadcaster
	closing     *game.ClosingTimers
	now         func() time.Time
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(sessions SessionStoreInterface, games store.GameStore, tracker *game.Tracker, generate GenerateFunc, maxAttempts int) *GameHandler {
	return &GameHandler{
		sessions:    sessions,
		games:       games,
		tracker:     tracker,
		generate:    generate,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// SetArchiver enables copying puzzles and images to S3.
func (h *GameHandler) SetArchiver(a Archiver) {
	h.archive = a
}

// SetBroadcaster enables live events.
func (h *GameHandler) SetBroadcaster(b Broadcaster) {
	h.events = b
}

// SetClosingTimers schedules a gameClosed event when a game's window ends.
func (h *GameHandler) SetClosingTimers(t *game.ClosingTimers) {
	h.closing = t
}

// CreateGameRequest is the body of POST /api/games.
type CreateGameRequest struct {
	Name          string     `json:"name"`
	Words         []string   `json:"words"`
	AvailableFrom *time.Time `json:"available_from"`
	AvailableTo   *time.Time `json:"available_to"`
}

// Create generates a puzzle and stores it as a new game owned by the caller.
func (h *GameHandler) Create(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	var req CreateGameRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > MaxNameLength {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "name is required")
	}
	if req.AvailableFrom != nil && req.AvailableTo != nil && !req.AvailableFrom.Before(*req.AvailableTo) {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "available_from must be before available_to")
	}

	p, err := generateFrom(h.generate, req.Words, h.maxAttempts)
	if err != nil {
		return response.FromError(c, err)
	}

	g := model.NewGame(name, player.ID, p)
	g.AvailableFrom = req.AvailableFrom
	g.AvailableTo = req.AvailableTo

	if err := h.games.Save(c.Request().Context(), g); err != nil {
		return response.FromError(c, err)
	}

	if h.closing != nil && g.AvailableTo != nil {
		h.closing.Schedule(g.ID, *g.AvailableTo)
	}

	log.Info().Str("game_id", g.ID).Str("owner_id", player.ID).Int("words", len(g.Words)).
		Int("columns", p.Columns()).Int("rows", p.Rows()).Msg("game created")

	data := map[string]interface{}{
		"game": g.ToDTO(player.ID),
	}
	if url := h.archivePuzzle(c, g); url != "" {
		data["image_url"] = url
	}
	return response.Created(c, data)
}

// List returns a page of games, newest first.
func (h *GameHandler) List(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.games.List(c.Request().Context(), page, limit)
	if err != nil {
		return response.FromError(c, err)
	}

	items := make([]model.GameDTO, 0, len(result.Items))
	for _, g := range result.Items {
		items = append(items, g.ToDTO(player.ID))
	}

	return response.Success(c, map[string]interface{}{
		"games": items,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	})
}

// Get returns one game. Opening an available game starts the caller's
// participation.
func (h *GameHandler) Get(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := h.loadPlayable(c, player)
	if g == nil {
		return err
	}

	if !g.IsOwner(player.ID) {
		h.tracker.Begin(g.ID, player.ID)
	}

	return response.Success(c, map[string]interface{}{
		"game":  g.ToDTO(player.ID),
		"found": flatten(h.tracker.Found(g.ID, player.ID)),
	})
}

// Regenerate builds a new board from the game's words. Owner only.
func (h *GameHandler) Regenerate(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	if !g.IsOwner(player.ID) {
		return response.ErrorWithCode(c, http.StatusForbidden, response.CodeForbidden, "only the owner can regenerate the board")
	}

	p, err := h.generate(g.Words, h.maxAttempts)
	if err != nil {
		return response.FromError(c, err)
	}
	g.ReplacePuzzle(p)

	if err := h.games.Save(c.Request().Context(), g); err != nil {
		return response.FromError(c, err)
	}
	h.tracker.ResetGame(g.ID)
	if h.events != nil {
		h.events.Broadcast(g.ID, websocket.Event{Type: websocket.EventBoardRegenerated})
	}

	log.Info().Str("game_id", g.ID).Msg("board regenerated")

	data := map[string]interface{}{
		"game": g.ToDTO(player.ID),
	}
	if url := h.archivePuzzle(c, g); url != "" {
		data["image_url"] = url
	}
	return response.Success(c, data)
}

// Image renders the board as PNG. With ?highlight=1 the owner sees every
// solution marked, other players see the words they have found.
func (h *GameHandler) Image(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := h.loadPlayable(c, player)
	if g == nil {
		return err
	}

	opts := render.DefaultOptions()
	if highlight, _ := strconv.ParseBool(c.QueryParam("highlight")); highlight {
		if g.IsOwner(player.ID) {
			opts.Highlight = g.Puzzle.Solutions()
		} else {
			opts.Highlight = h.tracker.Found(g.ID, player.ID)
		}
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, g.Puzzle, opts); err != nil {
		return response.FromError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// loadPlayable fetches the game in :id and checks its availability window.
// A nil game means the error response has been written; return err as is.
func (h *GameHandler) loadPlayable(c echo.Context, player *model.Player) (*model.Game, error) {
	return loadPlayable(c, h.games, player, h.now())
}

func loadPlayable(c echo.Context, games store.GameStore, player *model.Player, now time.Time) (*model.Game, error) {
	g, err := games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, response.FromError(c, err)
	}
	if !g.IsOwner(player.ID) && !g.Available(now) {
		return nil, response.ErrorWithCode(c, http.StatusForbidden, response.CodeNotAvailable, "this game is not available right now")
	}
	return g, nil
}

// archivePuzzle copies the record and image to S3 when configured. Failures
// are logged; the game itself is already saved.
func (h *GameHandler) archivePuzzle(c echo.Context, g *model.Game) string {
	if h.archive == nil {
		return ""
	}
	ctx := c.Request().Context()

	if _, err := h.archive.SavePuzzle(ctx, g.ID, g.Puzzle); err != nil {
		log.Warn().Err(err).Str("game_id", g.ID).Msg("failed to archive puzzle")
		return ""
	}
	url, err := h.archive.UploadImage(ctx, g.ID, g.Puzzle)
	if err != nil {
		log.Warn().Err(err).Str("game_id", g.ID).Msg("failed to upload puzzle image")
		return ""
	}
	return url
}

func flatten(segs []geometry.Segment) [][4]int {
	out := make([][4]int, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Flat())
	}
	return out
}

var _ GenerateFunc = puzzle.FromWords
