package pipelines

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	paragraphs map[string][]string
	calls      []string
}

func (s *stubExtractor) Paragraphs(_ context.Context, path string) ([]string, error) {
	s.calls = append(s.calls, filepath.Base(path))
	p, ok := s.paragraphs[filepath.Base(path)]
	if !ok {
		return nil, errors.New("unsupported document")
	}
	return p, nil
}

func setupDocuments(t *testing.T, b *backend) {
	t.Helper()
	dir := b.cfg.DocumentsDir
	writeDocx(t, filepath.Join(dir, "D8 Ekonomi.docx"), "D8 Ekonomi", "Kavramsal Tanım", "Target description", "Extra")
	writeFile(t, filepath.Join(dir, "D8 Ekonomi.pdf"), "%PDF-1.4")
	writeDocx(t, filepath.Join(dir, "Kısa.docx"), "Kısa", "Second")
	writeFile(t, filepath.Join(dir, "Bozuk.docx"), "not a zip")
	writeFile(t, filepath.Join(dir, "~$D8 Ekonomi.docx"), "lock")
	writeFile(t, filepath.Join(dir, "notlar.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "Eski.odt"), "odt")
}

func TestDocumentImporterInsertsRecords(t *testing.T) {
	b := newBackend(t)
	setupDocuments(t, b)

	summary, err := NewDocumentImporter(b.cfg, b.storage, b.records, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Success)
	assert.Zero(t, summary.Errors)

	rows := b.srv.Rows("trainings")
	require.Len(t, rows, 3)

	eco := rowByTitle(t, rows, "D8 Ekonomi")
	assert.Equal(t, "Target description", eco["description"])
	assert.Equal(t, "D-8", eco["topic"])
	assert.Equal(t, true, eco["is_active"])
	assert.Nil(t, eco["image_url"])
	media, ok := eco["media_url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(media, b.srv.URL+"/storage/v1/object/public/content_media/"))
	assert.True(t, strings.HasSuffix(media, ".pdf"))

	assert.Equal(t, "Second", rowByTitle(t, rows, "Kısa")["description"])
	assert.Nil(t, rowByTitle(t, rows, "Kısa")["media_url"])

	broken := rowByTitle(t, rows, "Bozuk")
	assert.Equal(t, "", broken["description"])

	names := b.srv.ObjectNames("content_media")
	require.Len(t, names, 1)
	data, contentType, _ := b.srv.Object("content_media", names[0])
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestDocumentImporterUsesExtractorForOtherFormats(t *testing.T) {
	b := newBackend(t)
	setupDocuments(t, b)
	extractor := &stubExtractor{paragraphs: map[string][]string{
		"Eski.odt": {"Eski", "Only second"},
	}}

	summary, err := NewDocumentImporter(b.cfg, b.storage, b.records, extractor).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Success)

	assert.Equal(t, []string{"Eski.odt"}, extractor.calls)
	assert.Equal(t, "Only second", rowByTitle(t, b.srv.Rows("trainings"), "Eski")["description"])
}

func TestDocumentImporterPDFFailureStillInserts(t *testing.T) {
	b := newBackend(t)
	setupDocuments(t, b)
	b.failOn(http.MethodPost, "/storage/", http.StatusInternalServerError)

	summary, err := NewDocumentImporter(b.cfg, b.storage, b.records, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Success)
	assert.Nil(t, rowByTitle(t, b.srv.Rows("trainings"), "D8 Ekonomi")["media_url"])
}

func TestDocumentImporterInsertFailureCounted(t *testing.T) {
	b := newBackend(t)
	setupDocuments(t, b)
	b.failOn(http.MethodPost, "/rest/v1/trainings", http.StatusConflict)

	summary, err := NewDocumentImporter(b.cfg, b.storage, b.records, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Success)
	assert.Equal(t, 3, summary.Errors)
}

func TestDocumentImporterMissingDir(t *testing.T) {
	b := newBackend(t)

	_, err := NewDocumentImporter(b.cfg, b.storage, b.records, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrMissingInput)
}
