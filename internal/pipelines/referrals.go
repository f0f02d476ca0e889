package pipelines

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/importer"
	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/rs/zerolog/log"
)

// ReferralImporter loads national-ID / reference-code pairs in batches.
type ReferralImporter struct {
	cfg     *config.Config
	records services.RecordStore
}

func NewReferralImporter(cfg *config.Config, records services.RecordStore) *ReferralImporter {
	return &ReferralImporter{cfg: cfg, records: records}
}

func (r *ReferralImporter) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("import-referrals")

	rows, err := importer.OpenRows(r.cfg.ReferralsFile)
	if err != nil {
		return summary, missing("referrals file", r.cfg.ReferralsFile, err)
	}
	defer rows.Close()

	log.Info().Str("file", r.cfg.ReferralsFile).Int("batch_size", r.cfg.BatchSize).Msg("Importing referrals")

	header, err := rows.Next()
	if errors.Is(err, io.EOF) {
		summary.Finish()
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("failed to read header: %w", err)
	}
	log.Info().Strs("header", header).Msg("Header")

	batcher := importer.NewBatcher[models.Referral](r.cfg.BatchSize, r.records.InsertReferrals)
	batcher.OnFlush = func(n int, err error) {
		if err != nil {
			log.Error().Err(err).Int("rows", n).Msg("Batch insert failed")
			summary.Failed(n)
			return
		}
		summary.Succeeded(n)
		log.Info().Int("processed", summary.Rows).Int("succeeded", summary.Success).Msg("Batch inserted")
	}

	for {
		fields, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			summary.Rows++
			log.Warn().Err(err).Int("row", summary.Rows).Msg("Unreadable row")
			summary.Failed(1)
			continue
		}
		if err != nil {
			batcher.Flush(ctx)
			return summary, fmt.Errorf("failed to read rows: %w", err)
		}

		summary.Rows++
		referral, err := importer.ParseReferral(fields)
		if err != nil {
			log.Warn().Err(err).Int("row", summary.Rows).Strs("fields", fields).Msg("Invalid row")
			summary.Failed(1)
			continue
		}
		batcher.Add(ctx, referral)
	}
	batcher.Flush(ctx)

	summary.Finish()
	return summary, nil
}
