package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/config"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

func main() {
	// Setup structured logger (JSON handler). The terminal itself is the
	// UI, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	// Optional .env overlay before viper reads the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store := session.NewStore(cfg.Session.FilePath)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	terminal := view.NewTerminal(os.Stdout)

	a := newApp(cfg, client, store, terminal)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		slog.Info("Shutting down...")
		cancel()
	}()

	// Periodic event list refresh while a session exists.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Events.RefreshCron, func() {
		a.refreshEvents(ctx)
	}); err != nil {
		slog.Error("Invalid refresh schedule", "cron", cfg.Events.RefreshCron, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if err := a.run(ctx); err != nil {
		slog.Error("Client exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Client exited")
}
