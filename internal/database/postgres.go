package database

import (
	"fmt"

	"github.com/P3chys/content-tools/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// One-shot tools run a single sequential loop.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(2)

	log.Info().Msg("Database connected successfully")
	return db, nil
}

// RunMigrations creates the tables the import tools write to. Only used
// against a local Postgres; the hosted schema is owned by the backend.
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Running migrations...")
	if err := db.AutoMigrate(&models.Training{}, &models.Referral{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
