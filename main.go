package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sanguo-reversi-server/api"
	"sanguo-reversi-server/bot"
	"sanguo-reversi-server/config"
	"sanguo-reversi-server/loghandler"
	"sanguo-reversi-server/room"
	"sanguo-reversi-server/storage"
	"sanguo-reversi-server/ws"
)

func main() {
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	cfg := config.Load()
	slog.Info("configuration loaded", "tag", "main",
		"boardSize", cfg.BoardSize, "initialHP", cfg.InitialHP, "deckSize", cfg.DeckSize,
		"handCapacity", cfg.HandCapacity, "wsPort", cfg.WSPort)

	if cfg.AuthJWKSBaseURL == "" {
		slog.Info("auth not configured; all players join as guests", "tag", "main")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("storage init failed", "tag", "main", "err", err)
		os.Exit(1)
	}
	if store == nil {
		slog.Info("DATABASE_URL not set; match history disabled", "tag", "main")
	}
	defer store.Close()

	registry := room.NewRegistry(cfg)
	registry.AttachBot = func(r *room.Room) {
		if err := bot.Attach(r); err != nil {
			slog.Warn("bot attach failed", "tag", "main", "err", err)
		}
	}
	registry.OnMatchEnd = func(sum room.MatchSummary) {
		if err := store.RecordMatch(context.Background(), sum); err != nil {
			slog.Error("record match failed", "tag", "main", "match", sum.MatchID, "err", err)
		}
	}

	hub := ws.NewHub(cfg, registry)
	go hub.Run(ctx)

	handler := api.NewHandler(cfg, store)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", handler.Health)
	mux.HandleFunc("/api/leaderboard", handler.Leaderboard)
	mux.HandleFunc("/api/history", handler.History)

	addr := fmt.Sprintf(":%d", cfg.WSPort)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down", "tag", "main")
		server.Shutdown(context.Background())
	}()

	slog.Info("server listening", "tag", "main", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "tag", "main", "err", err)
		os.Exit(1)
	}
}
