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
	if a.Extractor == nil {
		log.Info().Msg("TIKA_URL not set; importing DOCX files only")
	}

	summary, err := pipelines.NewDocumentImporter(cfg, a.Storage, a.Records, a.Extractor).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Document import aborted")
	}

	a.Report(ctx, summary)
}
