package pipelines

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/cover"
	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/P3chys/content-tools/internal/utils"
	"github.com/rs/zerolog/log"
)

// CoverGenerator renders a cover for every document under the content
// directory, uploads it and points the matching record at it.
type CoverGenerator struct {
	cfg         *config.Config
	compositor  *cover.Compositor
	storage     services.ObjectStore
	records     services.RecordStore
	journal     services.Journal
	backgrounds map[string]string
}

func NewCoverGenerator(cfg *config.Config, storage services.ObjectStore, records services.RecordStore, journal services.Journal) *CoverGenerator {
	if journal == nil {
		journal = services.NopJournal{}
	}
	compositor := cover.New(cover.Options{
		Width:     cfg.CoverWidth,
		Height:    cfg.CoverHeight,
		FontSize:  cfg.CoverFontSize,
		MaxChars:  cfg.CoverMaxChars,
		FontPaths: cfg.FontPaths,
	})
	log.Debug().Str("font", compositor.FontSource).Msg("Cover font resolved")

	return &CoverGenerator{
		cfg:         cfg,
		compositor:  compositor,
		storage:     storage,
		records:     records,
		journal:     journal,
		backgrounds: models.CategoryBackgrounds,
	}
}

func (g *CoverGenerator) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("create-covers")

	folders, err := os.ReadDir(g.cfg.ContentDir)
	if err != nil {
		return summary, missing("content directory", g.cfg.ContentDir, err)
	}

	if err := os.MkdirAll(g.cfg.CoverOutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, folder := range folders {
		if !folder.IsDir() {
			continue
		}
		g.runCategory(ctx, folder.Name(), summary)
	}

	summary.Finish()
	return summary, nil
}

func (g *CoverGenerator) runCategory(ctx context.Context, category string, summary *report.Summary) {
	logger := log.With().Str("category", category).Logger()

	bgName, ok := g.backgrounds[category]
	if !ok {
		logger.Warn().Msg("No background mapped for category, skipping")
		summary.Skip()
		return
	}

	bgPath := filepath.Join(g.cfg.BackgroundsDir, bgName)
	background, err := cover.LoadBackground(bgPath)
	if err != nil {
		logger.Warn().Err(err).Str("background", bgPath).Msg("Background image unavailable, skipping")
		summary.Skip()
		return
	}

	docs, err := listFiles(filepath.Join(g.cfg.ContentDir, category), ".docx")
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to list documents")
		summary.Skip()
		return
	}

	logger.Info().Int("documents", len(docs)).Msg("Processing category")

	for _, doc := range docs {
		title := stem(doc)
		url, err := g.coverFor(ctx, background, title)
		if err != nil {
			logger.Error().Err(err).Str("title", title).Msg("Cover failed")
			summary.Failed(1)
			continue
		}
		logger.Info().Str("title", title).Str("url", url).Msg("Cover updated")
		summary.Succeeded(1)
	}
}

func (g *CoverGenerator) coverFor(ctx context.Context, background image.Image, title string) (string, error) {
	name := utils.UniqueName(utils.TitleHash(title), ".jpg")
	out := filepath.Join(g.cfg.CoverOutputDir, name)

	if err := cover.Save(g.compositor.Compose(background, title), out); err != nil {
		return "", fmt.Errorf("failed to render cover: %w", err)
	}

	url, err := g.storage.Upload(ctx, g.cfg.ImagesBucket, name, out, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}

	if err := g.journal.RememberCover(ctx, title, url); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("Failed to journal cover URL")
	}

	fields := map[string]any{"image_url": url}
	if err := g.records.PatchTrainings(ctx, services.TitleFilter(title), fields); err != nil {
		return url, fmt.Errorf("uploaded %s but failed to update record: %w", name, err)
	}
	return url, nil
}
