package services

import (
	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/models"
	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog/log"
)

const trainingsIndex = "trainings"

type SearchService struct {
	client *meilisearch.Client
	index  string
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure trainings index exists (best effort)
	_, err := client.GetIndex(trainingsIndex)
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        trainingsIndex,
			PrimaryKey: "id",
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create meilisearch trainings index")
		}

		_, err = client.Index(trainingsIndex).UpdateFilterableAttributes(&[]string{"topic", "is_active"})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to update filterable attributes")
		}

		_, err = client.Index(trainingsIndex).UpdateSortableAttributes(&[]string{"created_at", "title"})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to update sortable attributes")
		}

		_, err = client.Index(trainingsIndex).UpdateSearchableAttributes(&[]string{"title", "description", "topic"})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to update searchable attributes")
		}
	}

	return &SearchService{
		client: client,
		index:  trainingsIndex,
	}
}

func (s *SearchService) IndexTrainings(trainings []models.Training) error {
	if len(trainings) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(trainings)
	return err
}

func (s *SearchService) GetTrainingCount() (int64, error) {
	stats, err := s.client.Index(s.index).GetStats()
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}
