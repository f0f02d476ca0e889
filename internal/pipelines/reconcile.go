package pipelines

import (
	"context"
	"fmt"

	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/rs/zerolog/log"
)

// Reconciler repairs records whose cover was uploaded by an earlier run but
// whose update step failed, using the URLs remembered in the journal.
type Reconciler struct {
	records services.RecordStore
	journal services.Journal
}

func NewReconciler(records services.RecordStore, journal services.Journal) *Reconciler {
	if journal == nil {
		journal = services.NopJournal{}
	}
	return &Reconciler{records: records, journal: journal}
}

func (r *Reconciler) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("reconcile-images")

	trainings, err := r.records.ListTrainingsMissingImage(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list records without image: %w", err)
	}
	log.Info().Int("records", len(trainings)).Msg("Records without image")

	for _, t := range trainings {
		summary.Rows++
		logger := log.With().Str("title", t.Title).Logger()

		url, ok, err := r.journal.LookupCover(ctx, t.Title)
		if err != nil {
			logger.Error().Err(err).Msg("Journal lookup failed")
			summary.Failed(1)
			continue
		}
		if !ok {
			logger.Debug().Msg("No uploaded cover known")
			summary.Skip()
			continue
		}

		if err := r.records.PatchTrainings(ctx, services.TitleFilter(t.Title), map[string]any{"image_url": url}); err != nil {
			logger.Error().Err(err).Msg("Update failed")
			summary.Failed(1)
			continue
		}
		logger.Info().Str("url", url).Msg("Image restored")
		summary.Succeeded(1)
	}

	summary.Finish()
	return summary, nil
}
