package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore uploads a local file under a caller-chosen object name and
// returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, name, path, contentType string) (string, error)
}

// SupabaseStorage talks to the Supabase storage REST endpoint.
type SupabaseStorage struct {
	client *SupabaseClient
}

func NewSupabaseStorage(client *SupabaseClient) *SupabaseStorage {
	return &SupabaseStorage{client: client}
}

func (s *SupabaseStorage) Upload(ctx context.Context, bucket, name, path, contentType string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	objectPath := "/storage/v1/object/" + url.PathEscape(bucket) + "/" + url.PathEscape(name)
	req, err := s.client.newRequest(ctx, http.MethodPost, objectPath, file)
	if err != nil {
		return "", err
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.do(req, "upload "+bucket+"/"+name)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	return s.PublicURL(bucket, name), nil
}

// PublicURL is derived from the bucket and object name only.
func (s *SupabaseStorage) PublicURL(bucket, name string) string {
	return s.client.BaseURL() + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/" + url.PathEscape(name)
}

// MinIOStorage uploads through the S3 protocol, either to MinIO or to the
// Supabase S3 gateway.
type MinIOStorage struct {
	client    *minio.Client
	publicURL string
	checked   map[string]bool
}

func NewMinIOStorage(cfg *config.Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := cfg.MinIOPublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinIOStorage{
		client:    client,
		publicURL: publicURL,
		checked:   map[string]bool{},
	}, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context, bucket string) error {
	if s.checked[bucket] {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	s.checked[bucket] = true
	return nil
}

func (s *MinIOStorage) Upload(ctx context.Context, bucket, name, path, contentType string) (string, error) {
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	_, err = s.client.PutObject(ctx, bucket, name, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, name, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, url.PathEscape(bucket), url.PathEscape(name)), nil
}
