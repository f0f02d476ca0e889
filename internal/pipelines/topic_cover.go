package pipelines

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/models"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/P3chys/content-tools/internal/utils"
	"github.com/rs/zerolog/log"
)

// TopicCoverUpdater uploads one static image and sets it as the cover of
// every record in a topic.
type TopicCoverUpdater struct {
	cfg     *config.Config
	storage services.ObjectStore
	records services.RecordStore
}

func NewTopicCoverUpdater(cfg *config.Config, storage services.ObjectStore, records services.RecordStore) *TopicCoverUpdater {
	return &TopicCoverUpdater{cfg: cfg, storage: storage, records: records}
}

func (u *TopicCoverUpdater) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.New("upload-topic-cover")
	path := u.cfg.TopicCoverImage
	topic := models.Topic(u.cfg.TopicCoverTopic)

	if _, err := os.Stat(path); err != nil {
		return summary, missing("cover image", path, err)
	}

	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := u.storage.Upload(ctx, u.cfg.ImagesBucket, utils.UniqueName(stem(path), ext), path, contentType)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Upload failed")
		summary.Failed(1)
		summary.Finish()
		return summary, nil
	}
	log.Info().Str("url", url).Msg("Cover uploaded")

	if err := u.records.PatchTrainings(ctx, services.TopicFilter(topic), map[string]any{"image_url": url}); err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Str("url", url).Msg("Uploaded but failed to update records")
		summary.Failed(1)
		summary.Finish()
		return summary, nil
	}

	log.Info().Str("topic", string(topic)).Msg("Records updated")
	summary.Succeeded(1)
	summary.Finish()
	return summary, nil
}
