package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	if body != "" {
		w, err = zw.Create(documentPart)
		require.NoError(t, err)
		_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="` + wordNamespace + `"><w:body>` + body + `</w:body></w:document>`))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestDocxParagraphsConcatenatesRuns(t *testing.T) {
	path := writeDocx(t, `
<w:p><w:r><w:t>D-8 </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>Ekonomik İşbirliği</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t xml:space="preserve">   </w:t></w:r></w:p>
<w:p><w:r><w:t>KAVRAMSAL TANIM</w:t></w:r></w:p>
<w:p><w:r><w:t>Sekiz ülkenin </w:t></w:r><w:r><w:t>işbirliği örgütü.</w:t></w:r></w:p>
`)

	got, err := DocxParagraphs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"D-8 Ekonomik İşbirliği",
		"KAVRAMSAL TANIM",
		"Sekiz ülkenin işbirliği örgütü.",
	}, got)
	assert.Equal(t, "Sekiz ülkenin işbirliği örgütü.", SelectDescription(got, HeadingMarker))
}

func TestDocxParagraphsNestedParagraphsKeepDocumentOrder(t *testing.T) {
	path := writeDocx(t, `
<w:p><w:r><w:t>Outer</w:t></w:r><w:r><w:txbxContent><w:p><w:r><w:t>Inner</w:t></w:r></w:p></w:txbxContent></w:r></w:p>
<w:p><w:r><w:t>Next</w:t></w:r></w:p>
`)

	got, err := DocxParagraphs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"OuterInner", "Inner", "Next"}, got)
}

func TestDocxParagraphsIgnoresTextOutsideRuns(t *testing.T) {
	path := writeDocx(t, `<w:p><w:r><w:instrText>PAGE</w:instrText><w:t>Visible</w:t></w:r></w:p>`)

	got, err := DocxParagraphs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Visible"}, got)
}

func TestDocxParagraphsMalformedMarkup(t *testing.T) {
	path := writeDocx(t, `<w:p><w:r><w:t>broken</w:r></w:p>`)

	_, err := DocxParagraphs(path)
	assert.Error(t, err)
}

func TestDocxParagraphsMissingDocumentPart(t *testing.T) {
	path := writeDocx(t, "")

	_, err := DocxParagraphs(path)
	assert.ErrorIs(t, err, ErrNoDocumentPart)
}

func TestDocxParagraphsNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := DocxParagraphs(path)
	assert.Error(t, err)
}
