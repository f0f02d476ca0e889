package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart  = "word/document.xml"
)

var ErrNoDocumentPart = errors.New("package has no " + documentPart)

// DocxParagraphs returns the non-empty paragraphs of a DOCX package in
// document order. A paragraph's text is the concatenation of all its text
// runs, including those of nested paragraphs.
func DocxParagraphs(path string) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", documentPart, err)
		}
		defer rc.Close()
		return paragraphs(rc)
	}
	return nil, ErrNoDocumentPart
}

func paragraphs(r io.Reader) ([]string, error) {
	var (
		texts  []*strings.Builder
		open   []int
		inText int
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				// Slot reserved at the start tag keeps outer paragraphs first.
				texts = append(texts, &strings.Builder{})
				open = append(open, len(texts)-1)
			case "t":
				inText++
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if len(open) > 0 {
					open = open[:len(open)-1]
				}
			case "t":
				if inText > 0 {
					inText--
				}
			}
		case xml.CharData:
			if inText == 0 {
				continue
			}
			for _, i := range open {
				texts[i].Write(t)
			}
		}
	}

	var out []string
	for _, b := range texts {
		if text := strings.TrimSpace(b.String()); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
