package main

import (
	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/database"
	"github.com/P3chys/content-tools/internal/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Creates the trainings and tc_referans tables in a local Postgres so the
// tools can run with RECORDS_BACKEND=postgres.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migration completed successfully")
}
