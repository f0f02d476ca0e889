package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Supabase
	SupabaseURL string `validate:"required,url"`
	SupabaseKey string `validate:"required"`
	HTTPTimeout time.Duration

	// Backends
	StorageBackend string `validate:"oneof=supabase s3"`
	RecordsBackend string `validate:"oneof=rest postgres"`

	// Database (RECORDS_BACKEND=postgres)
	DatabaseURL string `validate:"required_if=RecordsBackend postgres"`

	// MinIO / S3 (STORAGE_BACKEND=s3)
	MinIOEndpoint  string `validate:"required_if=StorageBackend s3"`
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOPublicURL string

	// Optional collaborators, disabled when empty
	MeiliURL    string `validate:"omitempty,url"`
	MeiliAPIKey string
	RedisURL    string
	TikaURL     string `validate:"omitempty,url"`

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=console json"`

	// Buckets
	ImagesBucket string `validate:"required"`
	MediaBucket  string `validate:"required"`

	// Cover generator
	ContentDir     string  `validate:"required"`
	BackgroundsDir string  `validate:"required"`
	CoverOutputDir string  `validate:"required"`
	CoverWidth     int     `validate:"gt=0"`
	CoverHeight    int     `validate:"gt=0"`
	CoverFontSize  float64 `validate:"gt=0"`
	CoverMaxChars  int     `validate:"gt=0"`
	FontPaths      []string

	// Document importer
	DocumentsDir   string `validate:"required"`
	DocumentsTopic string `validate:"required"`
	HeadingMarker  string `validate:"required"`

	// Referral importer
	ReferralsFile string `validate:"required"`
	BatchSize     int    `validate:"gt=0"`

	// Topic cover updater
	TopicCoverImage string `validate:"required"`
	TopicCoverTopic string `validate:"required"`
}

func Load() *Config {
	return &Config{
		SupabaseURL: strings.TrimRight(getEnv("SUPABASE_URL", "http://localhost:54321"), "/"),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 0),

		StorageBackend: getEnv("STORAGE_BACKEND", "supabase"),
		RecordsBackend: getEnv("RECORDS_BACKEND", "rest"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		MinIOPublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),

		MeiliURL:    getEnv("MEILI_URL", ""),
		MeiliAPIKey: getEnv("MEILI_API_KEY", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		TikaURL:     strings.TrimRight(getEnv("TIKA_URL", ""), "/"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		ImagesBucket: getEnv("IMAGES_BUCKET", "content_images"),
		MediaBucket:  getEnv("MEDIA_BUCKET", "content_media"),

		ContentDir:     getEnv("CONTENT_DIR", "İçerikler"),
		BackgroundsDir: getEnv("BACKGROUNDS_DIR", "assets/backgrounds"),
		CoverOutputDir: getEnv("COVER_OUTPUT_DIR", "scripts/cover_images"),
		CoverWidth:     getInt("COVER_WIDTH", 1024),
		CoverHeight:    getInt("COVER_HEIGHT", 1024),
		CoverFontSize:  getFloat("COVER_FONT_SIZE", 60),
		CoverMaxChars:  getInt("COVER_MAX_CHARS", 22),
		FontPaths:      getList("FONT_PATHS"),

		DocumentsDir:   getEnv("DOCUMENTS_DIR", "İçerikler/D8"),
		DocumentsTopic: getEnv("DOCUMENTS_TOPIC", "D-8"),
		HeadingMarker:  getEnv("HEADING_MARKER", "KAVRAMSAL TANIM"),

		ReferralsFile: getEnv("REFERRALS_FILE", "kullanici.csv"),
		BatchSize:     getInt("BATCH_SIZE", 500),

		TopicCoverImage: getEnv("TOPIC_COVER_IMAGE", "assets/covers/d8_cover.png"),
		TopicCoverTopic: getEnv("TOPIC_COVER_TOPIC", "D-8"),
	}
}

// Validate reports the first set of invalid fields as a validator.ValidationErrors.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
