package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/P3chys/content-tools/internal/report"
	"github.com/redis/go-redis/v9"
)

const (
	coversKey   = "content-tools:covers"
	runsKeyFmt  = "content-tools:runs:%s"
	runsToKeep  = 50
	pingTimeout = 5 * time.Second
)

// Journal remembers what earlier runs uploaded so a later pass can repair
// records whose update step failed.
type Journal interface {
	RememberCover(ctx context.Context, title, url string) error
	LookupCover(ctx context.Context, title string) (string, bool, error)
	RecordRun(ctx context.Context, summary *report.Summary) error
}

// NopJournal is used when no Redis is configured.
type NopJournal struct{}

func (NopJournal) RememberCover(context.Context, string, string) error { return nil }

func (NopJournal) LookupCover(context.Context, string) (string, bool, error) { return "", false, nil }

func (NopJournal) RecordRun(context.Context, *report.Summary) error { return nil }

type RedisJournal struct {
	redis *redis.Client
}

func NewRedisJournal(redisURL string) (*RedisJournal, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisJournal{redis: client}, nil
}

func (j *RedisJournal) RememberCover(ctx context.Context, title, url string) error {
	return j.redis.HSet(ctx, coversKey, title, url).Err()
}

func (j *RedisJournal) LookupCover(ctx context.Context, title string) (string, bool, error) {
	url, err := j.redis.HGet(ctx, coversKey, title).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

// RecordRun keeps the most recent summaries per pipeline.
func (j *RedisJournal) RecordRun(ctx context.Context, summary *report.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(runsKeyFmt, summary.Pipeline)
	if err := j.redis.LPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return j.redis.LTrim(ctx, key, 0, runsToKeep-1).Err()
}

func (j *RedisJournal) Close() error {
	return j.redis.Close()
}
