// Package pipelines holds the one-shot content import jobs. Each job runs
// sequentially, logs per item, and returns a report.Summary; only a missing
// top-level input aborts a run.
package pipelines

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/P3chys/content-tools/internal/models"
)

// ErrMissingInput means the directory or file a run starts from does not exist.
var ErrMissingInput = errors.New("missing input")

// TextExtractor reads paragraphs from documents the DOCX reader cannot open.
type TextExtractor interface {
	Paragraphs(ctx context.Context, path string) ([]string, error)
}

// Indexer is the search side of the reindex job.
type Indexer interface {
	IndexTrainings(trainings []models.Training) error
	GetTrainingCount() (int64, error)
}

func missing(kind, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s %s", ErrMissingInput, kind, path)
	}
	return fmt.Errorf("failed to read %s %s: %w", kind, path, err)
}

// listFiles returns the regular files in dir whose extension is one of exts,
// sorted by name. Office lock files (~$name) are ignored.
func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
