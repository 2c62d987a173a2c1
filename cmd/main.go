/*
Package main is the entry point for papochat.

It loads configuration, initializes logging, builds the session store, the user registry,
the chat log and the chat hub, serves HTTP, and shuts everything down on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"papochat/internal/app/chat"
	"papochat/internal/app/registry"
	"papochat/internal/app/session"
	"papochat/internal/configs"
	"papochat/internal/handler"
	"papochat/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("session_store", cfg.SessionStore).
		Dur("session_ttl", cfg.SessionTTL).
		Str("public_dir", cfg.PublicDir).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		logx.Fatal(err, "Failed to initialize session store")
	}

	hub := chat.NewHub()
	go hub.Run()

	deps := &handler.AppDeps{
		Config:   cfg,
		Sessions: session.NewManager(store, cfg.Secret, cfg.SessionTTL, !cfg.IsDevelopment()),
		Users:    registry.New(),
		Messages: chat.NewLog(),
		Hub:      hub,
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("papochat listening on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	if err := closeStore(); err != nil {
		logx.Error(err, "Failed to close session store")
	}

	logx.Info("Server gracefully stopped.")
}

// newSessionStore builds the configured session store and returns a function releasing it.
func newSessionStore(ctx context.Context, cfg *configs.AppConfig) (session.Store, func() error, error) {
	switch cfg.SessionStore {
	case configs.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
		}
		logx.Info("Connected to Redis", "addr", cfg.RedisAddr)

		store := session.NewRedisStore(rdb, cfg.SessionTTL)
		return store, func() error {
			store.Close()
			return rdb.Close()
		}, nil

	default:
		store := session.NewMemoryStore(cfg.SessionTTL, time.Minute)
		return store, store.Close, nil
	}
}
