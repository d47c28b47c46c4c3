package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/AlexTLDR/wedding/internal/backup"
	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/logger"
	"github.com/AlexTLDR/wedding/internal/server"
	"github.com/AlexTLDR/wedding/internal/sheets"
)

func main() {
	// Load .env file (ignore error if a file doesn't exist)
	// Use Overload to force to overwrite any existing environment variables
	envErr := godotenv.Overload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, envErr); err != nil {
		l := logger.New("info", "console")
		l.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, envErr error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	store, err := sheets.FromConfig(ctx, cfg.Sheets, logger.Component(log, "sheets"))
	if err != nil {
		return fmt.Errorf("failed to create sheet client: %w", err)
	}

	var objects backup.ObjectStore
	if cfg.Backup.Enabled() {
		client, err := backup.NewS3Client(ctx, cfg.Backup)
		if err != nil {
			return fmt.Errorf("failed to create backup client: %w", err)
		}
		objects = client
	} else {
		log.Info().Msg("backups disabled, no bucket configured")
	}

	srv, err := server.New(cfg, store, objects, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
