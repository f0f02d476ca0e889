package services

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/P3chys/content-tools/internal/config"
)

// TextExtractionService reads paragraphs out of documents that are not DOCX
// packages by sending them to an Apache Tika server.
type TextExtractionService struct {
	tikaURL string
	client  *http.Client
}

func NewTextExtractionService(cfg *config.Config) *TextExtractionService {
	return &TextExtractionService{
		tikaURL: cfg.TikaURL,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (s *TextExtractionService) Paragraphs(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.tikaURL+"/tika", file)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tika: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Op: "tika", Status: resp.StatusCode, Body: readSnippet(resp.Body)}
	}

	var paragraphs []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs, scanner.Err()
}
