package services

import (
	"context"
	"fmt"

	"github.com/P3chys/content-tools/internal/models"
	"gorm.io/gorm"
)

// DBRecords implements RecordStore directly against the backend's Postgres.
type DBRecords struct {
	db *gorm.DB
}

func NewDBRecords(db *gorm.DB) *DBRecords {
	return &DBRecords{db: db}
}

func (r *DBRecords) InsertTraining(ctx context.Context, training models.Training) error {
	if err := r.db.WithContext(ctx).Create(&training).Error; err != nil {
		return fmt.Errorf("insert training: %w", err)
	}
	return nil
}

// InsertReferrals issues a single INSERT so the batch succeeds or fails as a whole.
func (r *DBRecords) InsertReferrals(ctx context.Context, referrals []models.Referral) error {
	if len(referrals) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&referrals).Error; err != nil {
		return fmt.Errorf("insert referrals: %w", err)
	}
	return nil
}

func (r *DBRecords) PatchTrainings(ctx context.Context, filter Filter, fields map[string]any) error {
	if err := filter.validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Model(&models.Training{}).
		Where(filter.Column+" = ?", filter.Value).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update trainings where %s: %w", filter.Column, err)
	}
	return nil
}

func (r *DBRecords) ListTrainingsMissingImage(ctx context.Context) ([]models.Training, error) {
	var trainings []models.Training
	err := r.db.WithContext(ctx).Where("image_url IS NULL").Order("id").Find(&trainings).Error
	return trainings, err
}

func (r *DBRecords) ListTrainings(ctx context.Context, offset, limit int) ([]models.Training, error) {
	var trainings []models.Training
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&trainings).Error
	return trainings, err
}

func (r *DBRecords) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Count(&count).Error
	return count, err
}

func (r *DBRecords) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
