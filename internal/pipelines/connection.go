package pipelines

import (
	"context"

	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/rs/zerolog/log"
)

// CheckConnection pings the records backend and counts the tables the
// import jobs write to. Every failed probe is counted; none aborts.
func CheckConnection(ctx context.Context, records services.RecordStore) *report.Summary {
	summary := report.New("check-connection")

	if err := records.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Backend unreachable")
		summary.Failed(1)
	} else {
		log.Info().Msg("Backend reachable")
		summary.Succeeded(1)
	}

	for _, table := range []string{models.Training{}.TableName(), models.Referral{}.TableName()} {
		n, err := records.Count(ctx, table)
		if err != nil {
			log.Error().Err(err).Str("table", table).Msg("Count failed")
			summary.Failed(1)
			continue
		}
		log.Info().Str("table", table).Int64("rows", n).Msg("Table reachable")
		summary.Succeeded(1)
	}

	summary.Finish()
	return summary
}
