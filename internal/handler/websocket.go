package handler

import (
	"net/http"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/response"
	"github.com/kyiku/wordsearch-back/internal/store"
	"github.com/kyiku/wordsearch-back/internal/websocket"
)

const (
	wsReadLimit = 4096
	wsIdleLimit = 2 * time.Minute
)

// WebSocketHandler streams a game's live events.
type WebSocketHandler struct {
	sessions SessionStoreInterface
	games    store.GameStore
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. checkOrigin decides
// which browser origins may connect; nil allows same-origin requests only.
func NewWebSocketHandler(sessions SessionStoreInterface, games store.GameStore, hub *websocket.Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		games:    games,
		hub:      hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Connect upgrades the request and subscribes it to the game in :id.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	player := currentPlayer(c, h.sessions)

	g, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		log.Warn().Err(err).Str("game_id", g.ID).Msg("websocket upgrade failed")
		return nil
	}

	sub := h.hub.Subscribe(g.ID, player.ID, conn)
	log.Debug().Str("game_id", g.ID).Str("player_id", player.ID).Int("subscribers", h.hub.Count(g.ID)).Msg("websocket connected")

	defer func() {
		h.hub.Unsubscribe(sub)
		_ = sub.Close()
		log.Debug().Str("game_id", g.ID).Str("player_id", player.ID).Msg("websocket disconnected")
	}()

	conn.SetReadLimit(wsReadLimit)
	ping := websocket.NewPingHandler(sub)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleLimit))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil
		}
		ping.Handle(msg)
	}
}
