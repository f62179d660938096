// mind-os - multi-agent idea review server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emptyteabot/mind-os/internal/agents"
	"github.com/emptyteabot/mind-os/internal/api"
	"github.com/emptyteabot/mind-os/internal/config"
	"github.com/emptyteabot/mind-os/internal/fanout"
	"github.com/emptyteabot/mind-os/internal/history"
	"github.com/emptyteabot/mind-os/internal/llm"
	"github.com/emptyteabot/mind-os/internal/usage"
	"github.com/emptyteabot/mind-os/web"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "addr", cfg.Addr(), "chat_mode", cfg.ChatMode, "daily_limit", cfg.DailyLimit)

	// Quota gate over the file-backed usage store.
	gate := usage.NewGate(usage.NewStore(cfg.UsageFile), cfg.DailyLimit)

	// Upstream client and fan-out orchestrator.
	client := llm.NewClient(cfg)
	orch := fanout.New(llm.NewInvoker(client), cfg.Workers)

	// Conversation history only exists in the single-assistant deployment.
	var hist *history.Store
	if cfg.ChatMode == config.ModeConverse {
		hist, err = history.NewSQLite(cfg.HistoryDBPath)
		if err != nil {
			slog.Error("Failed to initialize conversation store", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := hist.Close(); closeErr != nil {
				slog.Error("Failed to close conversation store", "error", closeErr)
			}
		}()

		if err := hist.PinSystem(context.Background(), agents.ConversePrompt); err != nil {
			slog.Error("Failed to pin system turn", "error", err)
			os.Exit(1)
		}
		slog.Info("Conversation store ready", "path", cfg.HistoryDBPath)
	}

	handler := api.NewHandler(cfg, gate, orch, client, hist)
	r := api.NewRouter(handler, web.Page("index.html"), web.Page("admin.html"))

	// SSE responses need an unbounded write window.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
