package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"nifty-data/internal/app"
	"nifty-data/internal/slogx"
	"nifty-data/internal/symbols"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := InitializeApp(ctx)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	cfg := a.Config
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel))

	universe := symbols.LoadAll(cfg.SymbolSources())
	slog.Info("got symbols", "count", len(universe))

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		cleanup()
		os.Exit(1)
	}
	slog.Info("save dir", "dir", cfg.DataDir, "format", cfg.SaveFormat)

	if err := app.RunPipeline(ctx, a.Fetcher, a.Loader, universe); err != nil {
		slog.Error("pipeline failed", "error", err)
		cleanup()
		os.Exit(1)
	}
	slog.Info("pipeline complete")
}
