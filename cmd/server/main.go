package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/scoreboard/internal/api"
	"github.com/mcoot/scoreboard/internal/config"
	"github.com/mcoot/scoreboard/internal/factory"
	"github.com/mcoot/scoreboard/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	app := factory.New(factory.Config{
		Logger:           logger,
		DefaultThreshold: cfg.DefaultThreshold,
	})
	defer app.Close()

	// API and web pages share one router so encoded paths behave the same on both
	root := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Controller:  app.ScoreboardController,
		HubManager:  app.HubManager,
		Broadcaster: app.Broadcaster,
	})
	web.Register(root, web.RouterConfig{
		Logger:      logger,
		Controller:  app.ScoreboardController,
		HubManager:  app.HubManager,
		Broadcaster: app.Broadcaster,
	})

	server := api.NewServer(root, api.ServerConfigFrom(cfg), logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			app.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Close hubs first so open event streams end and Shutdown can drain
		app.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
