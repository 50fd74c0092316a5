package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/efreeman/liaptui/internal/ai"
	"github.com/efreeman/liaptui/internal/audit"
	"github.com/efreeman/liaptui/internal/broadcast"
	"github.com/efreeman/liaptui/internal/config"
	"github.com/efreeman/liaptui/internal/conn"
	"github.com/efreeman/liaptui/internal/logger"
	"github.com/efreeman/liaptui/internal/middleware"
	"github.com/efreeman/liaptui/internal/repository/postgres"
	redisrepo "github.com/efreeman/liaptui/internal/repository/redis"
	"github.com/efreeman/liaptui/internal/room"
	"github.com/efreeman/liaptui/internal/transport/ws"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("port", cfg.Port).Msg("config loaded")

	sink := wireAuditSink(cfg)

	hub := broadcast.NewHub()
	mgr := conn.NewManager(hub)
	registry := room.NewRegistry()

	roomCfg := room.Config{
		DedupWindow:        cfg.DedupWindow,
		TransitionCooldown: cfg.BroadcastCooldown,
		RedealTimeout:      cfg.RedealTimeout,
	}
	lifecycle := room.NewLifecycle(registry, hub, roomCfg, ai.HeuristicDecider{}, logger.Get(), cfg.RoomGracePeriod)
	wireAuditRecorder(lifecycle, hub, sink)

	stopSweep := make(chan struct{})
	go lifecycle.RunIdleSweeper(30*time.Second, stopSweep)

	server := ws.NewServer(mgr, lifecycle, registry, logger.Get())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", server.Health)
	mux.HandleFunc("GET /ws", server.ServeWS)

	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	close(stopSweep)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}

// wireAuditSink picks the audit trail backing store from the
// environment: Postgres if DATABASE_URL is set, else Redis if
// REDIS_URL is set, else the zero-dependency default. Matching
// SPEC_FULL.md §6: "the engine runs with zero external services"
// unless an installation opts in.
func wireAuditSink(cfg *config.Config) audit.Sink {
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("audit: postgres connect failed, falling back to no-op sink")
			return audit.NoopSink{}
		}
		if err := postgres.Migrate(db); err != nil {
			log.Warn().Err(err).Msg("audit: postgres migrate failed, falling back to no-op sink")
			return audit.NoopSink{}
		}
		log.Info().Msg("audit trail backed by postgres")
		return audit.NewPostgresSink(db, logger.Get())
	}
	if cfg.RedisURL != "" {
		client, err := redisrepo.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("audit: redis connect failed, falling back to no-op sink")
			return audit.NoopSink{}
		}
		log.Info().Msg("audit trail backed by redis")
		return audit.NewRedisSink(client.Underlying(), logger.Get())
	}
	return audit.NoopSink{}
}

// auditSubscriberID is a reserved Hub subscriber key that can never
// collide with a real player ID (those are always "p-..." or
// "bot-...", see internal/transport/ws/session.go and
// internal/room/phase_waiting.go).
const auditSubscriberID = "__audit__"

// wireAuditRecorder registers an audit.Recorder alongside every room's
// players as soon as it's created, so the trail captures every
// broadcast from the room's very first event onward.
func wireAuditRecorder(lifecycle *room.Lifecycle, hub *broadcast.Hub, sink audit.Sink) {
	if _, ok := sink.(audit.NoopSink); ok {
		return
	}
	lifecycle.OnRoomCreated = func(code string) {
		hub.Register(code, auditSubscriberID, audit.NewRecorder(code, sink))
	}
}
