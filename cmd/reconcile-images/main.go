package main

import (
	"context"

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
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set; no uploaded covers are known, nothing will be repaired")
	}

	summary, err := pipelines.NewReconciler(a.Records, a.Journal).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation aborted")
	}

	a.Report(ctx, summary)
}
