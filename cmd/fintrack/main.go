package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/config"
	"fintrack/internal/dashboard"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: cfg.LogLevel, Component: "fintrack"})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Durable backend selection. The tab-scoped session slot is always an
	// in-memory store: it must not survive a restart.
	var (
		users           storage.UserRepository
		durableSessions storage.SessionRepository
		txs             storage.TransactionRepository
		prefs           storage.PrefRepository
	)
	switch cfg.DataBackend {
	case "memory":
		store := storage.NewMemoryStore()
		users, durableSessions, txs, prefs = store, store, store, store
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	default:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		users, durableSessions, txs, prefs = repo, repo, repo, repo
		logger.Info("Initialized SQLite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	}
	tabSessions := storage.NewMemoryStore()

	hasher := auth.SHA256Hasher{}
	creds := auth.NewCredentialStore(users, hasher)
	sessions := auth.NewSessionManager(creds, hasher, durableSessions, tabSessions)
	board := dashboard.NewService(txs)

	// Pick up a remembered session from the previous run.
	if s, err := sessions.Restore(context.Background()); err != nil {
		logger.Warn("Session restore failed", "error", err)
	} else if s != nil {
		logger.Info("Session restored", "email", s.Email)
	}

	srv := apphttp.NewServer(":"+cfg.Port, sessions, board, prefs)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
