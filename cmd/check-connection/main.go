package main

import (
	"context"
	"os"

	"github.com/P3chys/content-tools/internal/app"
	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/logger"
	"github.com/P3chys/content-tools/internal/pipelines"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	a, err := app.Setup(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer a.Close()

	ctx := context.Background()
	summary := pipelines.CheckConnection(ctx, a.Records)
	a.Report(ctx, summary)

	if summary.Errors > 0 {
		a.Close()
		os.Exit(1)
	}
}
