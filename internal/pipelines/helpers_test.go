package pipelines

import (
	"archive/zip"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/report"
	"github.com/P3chys/content-tools/internal/services"
	"github.com/P3chys/content-tools/internal/supabasetest"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

type backend struct {
	cfg     *config.Config
	srv     *supabasetest.Server
	storage services.ObjectStore
	records services.RecordStore
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	srv := supabasetest.New(t)
	root := t.TempDir()

	cfg := &config.Config{
		SupabaseURL:     srv.URL,
		SupabaseKey:     "test-key",
		ImagesBucket:    "content_images",
		MediaBucket:     "content_media",
		ContentDir:      filepath.Join(root, "content"),
		BackgroundsDir:  filepath.Join(root, "backgrounds"),
		CoverOutputDir:  filepath.Join(root, "out"),
		CoverWidth:      200,
		CoverHeight:     200,
		CoverFontSize:   18,
		CoverMaxChars:   22,
		FontPaths:       []string{filepath.Join(root, "no-font.ttf")},
		DocumentsDir:    filepath.Join(root, "D8"),
		DocumentsTopic:  "D-8",
		HeadingMarker:   "KAVRAMSAL TANIM",
		ReferralsFile:   filepath.Join(root, "kullanici.csv"),
		BatchSize:       500,
		TopicCoverImage: filepath.Join(root, "d8_cover.png"),
		TopicCoverTopic: "D-8",
	}

	client := services.NewSupabaseClient(cfg)
	return &backend{
		cfg:     cfg,
		srv:     srv,
		storage: services.NewSupabaseStorage(client),
		records: services.NewRestRecords(client),
	}
}

func (b *backend) failOn(method, pathPrefix string, status int) {
	b.srv.Fail = func(m, p string) int {
		if m == method && strings.HasPrefix(p, pathPrefix) {
			return status
		}
		return 0
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeImage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, imaging.Save(imaging.New(64, 64, color.NRGBA{R: 30, G: 90, B: 160, A: 255}), path))
}

// writeDocx writes a minimal WordprocessingML package with one w:p per paragraph.
func writeDocx(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

type memJournal struct {
	mu     sync.Mutex
	covers map[string]string
	runs   []string
}

func newMemJournal() *memJournal {
	return &memJournal{covers: map[string]string{}}
}

func (j *memJournal) RememberCover(_ context.Context, title, url string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.covers[title] = url
	return nil
}

func (j *memJournal) LookupCover(_ context.Context, title string) (string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	url, ok := j.covers[title]
	return url, ok, nil
}

func (j *memJournal) RecordRun(_ context.Context, s *report.Summary) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs = append(j.runs, s.Pipeline)
	return nil
}
