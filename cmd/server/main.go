package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/ai"
	"github.com/kyiku/wordsearch-back/internal/config"
	"github.com/kyiku/wordsearch-back/internal/game"
	"github.com/kyiku/wordsearch-back/internal/handler"
	"github.com/kyiku/wordsearch-back/internal/middleware"
	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/session"
	"github.com/kyiku/wordsearch-back/internal/storage"
	"github.com/kyiku/wordsearch-back/internal/store"
	"github.com/kyiku/wordsearch-back/internal/websocket"
)

const sessionExpiry = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Dur("latency", v.Latency).Msg("request")
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Initialize dependencies
	sessionStore := session.NewSessionStoreWithExpiry(sessionExpiry)
	tracker := game.NewTracker()
	hub := websocket.NewHub()
	closing := game.NewClosingTimers(func(gameID string) {
		n := hub.Broadcast(gameID, websocket.Event{Type: websocket.EventGameClosed})
		log.Info().Str("game_id", gameID).Int("subscribers", n).Msg("game closed")
	})
	defer closing.Stop()
	health := handler.NewHealthHandler()

	var games store.GameStore
	if cfg.DatabasePath != "" {
		sqlite, err := store.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
		}
		defer sqlite.Close()
		health.AddCheck("database", sqlite.Ping)
		games = sqlite
	} else {
		log.Warn().Msg("DATABASE_PATH not set, games are kept in memory")
		games = store.NewMemoryStore()
	}

	// Load AWS config
	awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if awsErr != nil {
		log.Warn().Err(awsErr).Msg("failed to load AWS config, S3 and Bedrock are disabled")
	}

	var bedrockAdapter ai.BedrockClientInterface
	if awsErr == nil {
		bedrockAdapter = &BedrockAdapter{client: bedrockruntime.NewFromConfig(awsCfg)}
	}
	suggester := ai.NewBedrockClient(bedrockAdapter, cfg.BedrockModelID)
	suggester.EnableFallback(cfg.SuggestFallback)

	// Initialize handlers
	generate := handler.GenerateFunc(puzzle.FromWords)
	puzzleHandler := handler.NewPuzzleHandler(generate, cfg.PuzzleMaxAttempts)
	gameHandler := handler.NewGameHandler(sessionStore, games, tracker, generate, cfg.PuzzleMaxAttempts)
	gameHandler.SetBroadcaster(hub)
	gameHandler.SetClosingTimers(closing)
	solutionHandler := handler.NewSolutionHandler(sessionStore, games, tracker)
	solutionHandler.SetBroadcaster(hub)
	wordsHandler := handler.NewWordsHandler(suggester)
	wsHandler := handler.NewWebSocketHandler(sessionStore, games, hub, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(origin, cfg.AllowedOrigins)
	})

	if awsErr == nil && cfg.S3Enabled() {
		archive := storage.NewS3Client(&S3Adapter{client: s3.NewFromConfig(awsCfg), bucket: cfg.S3Bucket}, cfg.CloudfrontDomain)
		gameHandler.SetArchiver(archive)
		log.Info().Str("bucket", cfg.S3Bucket).Msg("puzzle archive enabled")
	}

	// Generation is CPU bound; limit it per IP.
	limiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer limiter.Stop()
	limited := limiter.Middleware()

	// Health check (root level for ALB)
	e.GET("/health", health.Check)

	// WebSocket endpoint
	e.GET("/ws/games/:id", wsHandler.Connect)

	// API routes
	api := e.Group("/api")
	api.GET("/health", health.Check)

	api.POST("/puzzles", puzzleHandler.Generate, limited)
	api.POST("/words/suggest", wordsHandler.Suggest, limited)

	api.POST("/games", gameHandler.Create, limited)
	api.GET("/games", gameHandler.List)
	api.GET("/games/:id", gameHandler.Get)
	api.POST("/games/:id/regenerate", gameHandler.Regenerate, limited)
	api.GET("/games/:id/image", gameHandler.Image)
	api.GET("/games/:id/solutions", solutionHandler.List)
	api.POST("/games/:id/solutions", solutionHandler.Submit)

	for _, r := range e.Routes() {
		log.Debug().Str("method", r.Method).Str("path", r.Path).Msg("route")
	}

	go cleanupSessions(ctx, sessionStore)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// cleanupSessions drops expired sessions until ctx is done.
func cleanupSessions(ctx context.Context, sessions *session.SessionStore) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := sessions.Cleanup(); n > 0 {
				log.Debug().Int("removed", n).Msg("expired sessions removed")
			}
		case <-ctx.Done():
			return
		}
	}
}
