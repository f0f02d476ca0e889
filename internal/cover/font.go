package cover

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// DefaultFontPaths are tried in order before the built-in fonts.
var DefaultFontPaths = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/SFNSDisplay.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
}

const (
	builtinBold  = "builtin:gobold"
	builtinBasic = "builtin:basicfont"
)

// loadFace never fails: it ends with the Go Bold font and, should that not
// parse, the fixed 7x13 bitmap face.
func loadFace(paths []string, size float64) (font.Face, string) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		face, err := newFace(data, size)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Skipping unusable font")
			continue
		}
		return face, path
	}

	if face, err := newFace(gobold.TTF, size); err == nil {
		return face, builtinBold
	}
	return basicfont.Face7x13, builtinBasic
}

var collectionTag = []byte("ttcf")

func newFace(data []byte, size float64) (font.Face, error) {
	var (
		f   *opentype.Font
		err error
	)
	if bytes.HasPrefix(data, collectionTag) {
		var coll *opentype.Collection
		coll, err = opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		f, err = coll.Font(0)
	} else {
		f, err = opentype.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
