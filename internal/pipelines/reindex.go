package pipelines

import (
	"context"
	"fmt"
	"time"

	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/rs/zerolog/log"
)

const reindexPageSize = 100

// Reindexer copies every record into the search index.
type Reindexer struct {
	records services.RecordStore
	index   Indexer
	pause   time.Duration
}

func NewReindexer(records services.RecordStore, index Indexer) *Reindexer {
	return &Reindexer{records: records, index: index, pause: 100 * time.Millisecond}
}

func (r *Reindexer) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("reindex-trainings")

	dbCount, err := r.records.Count(ctx, models.Training{}.TableName())
	if err != nil {
		return summary, fmt.Errorf("failed to count records: %w", err)
	}

	indexCount, err := r.index.GetTrainingCount()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to get index count")
	}
	log.Info().Int64("records", dbCount).Int64("indexed", indexCount).Msg("Counts before reindex")

	for offset := 0; ; offset += reindexPageSize {
		trainings, err := r.records.ListTrainings(ctx, offset, reindexPageSize)
		if err != nil {
			return summary, fmt.Errorf("failed to fetch records at offset %d: %w", offset, err)
		}
		if len(trainings) == 0 {
			break
		}
		summary.Rows += len(trainings)

		if err := r.index.IndexTrainings(trainings); err != nil {
			log.Error().Err(err).Int("offset", offset).Msg("Failed to index batch")
			summary.Failed(len(trainings))
		} else {
			summary.Succeeded(len(trainings))
			log.Info().Int("batch", len(trainings)).Int("total", summary.Success).Msg("Indexed batch")
		}

		if len(trainings) < reindexPageSize {
			break
		}
		time.Sleep(r.pause)
	}

	if final, err := r.index.GetTrainingCount(); err == nil {
		log.Info().Int64("indexed", final).Msg("Index count after reindex")
	}

	summary.Finish()
	return summary, nil
}
