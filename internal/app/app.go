// Package app builds the collaborators shared by the command-line tools
// from one *config.Config.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/database"
	"github.com/P3chys/content-tools/internal/pipelines"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/rs/zerolog/log"
)

type App struct {
	Config  *config.Config
	Storage services.ObjectStore
	Records services.RecordStore
	Journal services.Journal

	// Optional; nil when not configured.
	Search    *services.SearchService
	Extractor pipelines.TextExtractor

	out     io.Writer
	closers []func() error
}

func Setup(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Journal: services.NopJournal{}, out: os.Stdout}

	inspectKey(cfg.SupabaseKey)
	client := services.NewSupabaseClient(cfg)

	switch cfg.StorageBackend {
	case "s3":
		storage, err := services.NewMinIOStorage(cfg)
		if err != nil {
			return nil, err
		}
		a.Storage = storage
	default:
		a.Storage = services.NewSupabaseStorage(client)
	}

	switch cfg.RecordsBackend {
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.Records = services.NewDBRecords(db)
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
	default:
		a.Records = services.NewRestRecords(client)
	}

	if cfg.RedisURL != "" {
		journal, err := services.NewRedisJournal(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Journal disabled")
		} else {
			a.Journal = journal
			a.closers = append(a.closers, journal.Close)
			log.Info().Msg("Redis journal initialized")
		}
	}

	if cfg.MeiliURL != "" {
		a.Search = services.NewSearchService(cfg)
		log.Info().Msg("Meilisearch service initialized")
	}

	if cfg.TikaURL != "" {
		a.Extractor = services.NewTextExtractionService(cfg)
	}

	return a, nil
}

func inspectKey(key string) {
	info, err := services.InspectAPIKey(key)
	if err != nil {
		log.Debug().Bool("opaque", errors.Is(err, services.ErrMalformedKey)).Msg("Skipping API key inspection")
		return
	}
	if info.Expired(time.Now()) {
		log.Warn().Time("expired_at", info.ExpiresAt).Msg("API key has expired")
	}
	if info.Role != "" && info.Role != "service_role" {
		log.Warn().Str("role", info.Role).Msg("API key is not a service key; writes may be rejected by row level security")
	}
}

// Report prints the end-of-run banner and records the run in the journal.
func (a *App) Report(ctx context.Context, summary *report.Summary) {
	summary.Print(a.out)
	if err := a.Journal.RecordRun(ctx, summary); err != nil {
		log.Warn().Err(err).Msg("Failed to record run")
	}
}

func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("Failed to close resource")
		}
	}
}
