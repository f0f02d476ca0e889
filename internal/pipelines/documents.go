package pipelines

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/extract"
	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/P3chys/content-tools/internal/utils"
	"github.com/rs/zerolog/log"
)

// Formats read through the text extractor when one is configured.
var extractedFormats = []string{".doc", ".odt", ".rtf"}

// DocumentImporter creates one record per source document in a folder,
// with its description and the sibling PDF as downloadable media.
type DocumentImporter struct {
	cfg       *config.Config
	storage   services.ObjectStore
	records   services.RecordStore
	extractor TextExtractor
}

// NewDocumentImporter accepts a nil extractor; only DOCX files are read then.
func NewDocumentImporter(cfg *config.Config, storage services.ObjectStore, records services.RecordStore, extractor TextExtractor) *DocumentImporter {
	return &DocumentImporter{cfg: cfg, storage: storage, records: records, extractor: extractor}
}

func (d *DocumentImporter) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("import-documents")
	dir := d.cfg.DocumentsDir

	if _, err := os.Stat(dir); err != nil {
		return summary, missing("documents directory", dir, err)
	}

	topic := models.Topic(d.cfg.DocumentsTopic)
	if !topic.Valid() {
		log.Warn().Str("topic", string(topic)).Msg("Topic is not one of the known topics")
	}

	exts := []string{".docx"}
	if d.extractor != nil {
		exts = append(exts, extractedFormats...)
	}
	docs, err := listFiles(dir, exts...)
	if err != nil {
		return summary, fmt.Errorf("failed to list documents: %w", err)
	}

	log.Info().Int("documents", len(docs)).Str("dir", dir).Msg("Found documents")

	for _, doc := range docs {
		title := stem(doc)
		logger := log.With().Str("title", title).Logger()

		description := d.describe(ctx, doc)
		if description == "" {
			logger.Warn().Msg("No description found")
		} else {
			logger.Info().Str("description", preview(description, 60)).Msg("Description extracted")
		}

		training := models.Training{
			Title:       title,
			Topic:       topic,
			Description: description,
			MediaURL:    d.uploadMedia(ctx, doc),
			IsActive:    true,
		}

		if err := d.records.InsertTraining(ctx, training); err != nil {
			logger.Error().Err(err).Msg("Insert failed")
			summary.Failed(1)
			continue
		}
		logger.Info().Msg("Record inserted")
		summary.Succeeded(1)
	}

	summary.Finish()
	return summary, nil
}

// describe never fails: unreadable documents yield an empty description.
func (d *DocumentImporter) describe(ctx context.Context, path string) string {
	var (
		paragraphs []string
		err        error
	)
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		paragraphs, err = extract.DocxParagraphs(path)
	} else {
		paragraphs, err = d.extractor.Paragraphs(ctx, path)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to read document")
		return ""
	}
	return extract.SelectDescription(paragraphs, d.cfg.HeadingMarker)
}

// uploadMedia uploads the same-stem PDF next to doc and returns its URL, or
// nil when there is none or the upload fails.
func (d *DocumentImporter) uploadMedia(ctx context.Context, doc string) *string {
	pdf := strings.TrimSuffix(doc, filepath.Ext(doc)) + ".pdf"
	if _, err := os.Stat(pdf); err != nil {
		log.Warn().Str("title", stem(doc)).Msg("No PDF found")
		return nil
	}

	url, err := d.storage.Upload(ctx, d.cfg.MediaBucket, utils.UniqueName("", ".pdf"), pdf, "application/pdf")
	if err != nil {
		log.Warn().Err(err).Str("title", stem(doc)).Msg("PDF upload failed")
		return nil
	}
	log.Info().Str("title", stem(doc)).Str("url", url).Msg("PDF uploaded")
	return &url
}
