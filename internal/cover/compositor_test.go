package cover

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Width:     320,
		Height:    240,
		FontSize:  24,
		MaxChars:  22,
		FontPaths: []string{"/nonexistent/font.ttf"},
	}
}

func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (r + g + b) / 3
}

func TestComposeProducesFixedSizeOpaqueImage(t *testing.T) {
	c := New(testOptions())
	bg := imaging.New(800, 500, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	img := c.Compose(bg, "Adalet ve hukuk devleti")

	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
	for y := 0; y < 240; y += 7 {
		for x := 0; x < 320; x += 7 {
			assert.Equal(t, uint8(255), img.NRGBAAt(x, y).A)
		}
	}
}

func TestComposeFlattensTransparentBackground(t *testing.T) {
	c := New(testOptions())
	bg := imaging.New(100, 100, color.NRGBA{})

	img := c.Compose(bg, "")

	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(10, 10))
}

func TestComposeDarkensBottomThird(t *testing.T) {
	c := New(testOptions())
	bg := imaging.New(320, 240, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	img := c.Compose(bg, "")

	top := luminance(img.At(5, 5))
	middle := luminance(img.At(5, 120))
	nearBottom := luminance(img.At(5, 235))
	assert.Equal(t, top, middle)
	assert.Less(t, nearBottom, middle)
}

func TestComposeDrawsTitleNearBottom(t *testing.T) {
	c := New(testOptions())
	bg := imaging.New(320, 240, color.NRGBA{R: 40, G: 40, B: 40, A: 255})

	plain := c.Compose(bg, "")
	titled := c.Compose(bg, "Sağlık")

	changedTop, changedBottom := 0, 0
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			if plain.NRGBAAt(x, y) != titled.NRGBAAt(x, y) {
				if y < 120 {
					changedTop++
				} else {
					changedBottom++
				}
			}
		}
	}
	assert.Zero(t, changedTop)
	assert.Positive(t, changedBottom)
}

func TestNewFallsBackToBuiltinFont(t *testing.T) {
	c := New(Options{Width: 10, Height: 10, FontSize: 12, MaxChars: 22, FontPaths: []string{"/missing.ttf"}})
	assert.NotNil(t, c.face)
	assert.NotEmpty(t, c.FontSource)
}

func TestLoadFaceUsesBasicFontWhenNothingParses(t *testing.T) {
	dir := t.TempDir()
	face, source := loadFace([]string{filepath.Join(dir, "missing.ttf")}, 12)
	assert.NotNil(t, face)
	assert.Contains(t, []string{builtinBold, builtinBasic}, source)
}

func TestSaveWritesJPEG(t *testing.T) {
	c := New(testOptions())
	out := filepath.Join(t.TempDir(), "cover.jpg")

	require.NoError(t, Save(c.Compose(imaging.New(50, 50, color.White), "Tarım"), out))

	decoded, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), decoded.Bounds())
}

func TestLoadBackgroundMissingFile(t *testing.T) {
	_, err := LoadBackground(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
