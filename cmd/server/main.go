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

	"github.com/joho/godotenv"

	"songlibrary/internal/config"
	"songlibrary/internal/models"
	"songlibrary/internal/repositories"
	"songlibrary/internal/server"
)

func main() {
	// .env is optional; the environment wins
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongodbDatabase)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = db.CreateIndexes(ctx)
	cancel()
	if err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	songs := repositories.NewMongoSongRepository(db)
	srv := server.New(cfg, songs)

	go func() {
		slog.Info("Starting music library API server", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Failed to shut down server cleanly", "error", err)
	}
	if err := db.Close(ctx); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}
