package cover

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	gradientMaxAlpha = 180
	bottomMargin     = 60
	lineSpacing      = 4
	shadowOffset     = 3
	jpegQuality      = 90
)

var shadowColor = color.NRGBA{A: 200}

type Options struct {
	Width     int
	Height    int
	FontSize  float64
	MaxChars  int
	FontPaths []string
}

// Compositor renders title overlays onto category backgrounds.
type Compositor struct {
	opts Options
	face font.Face

	// FontSource names the font file in use, or a builtin:* marker.
	FontSource string
}

func New(opts Options) *Compositor {
	paths := append(append([]string{}, opts.FontPaths...), DefaultFontPaths...)
	face, source := loadFace(paths, opts.FontSize)
	return &Compositor{opts: opts, face: face, FontSource: source}
}

func LoadBackground(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background %s: %w", path, err)
	}
	return img, nil
}

// Compose returns an opaque Width x Height image: the background cropped to
// fill, a dark gradient over the bottom third and the uppercased, wrapped
// title centred above the bottom edge with a drop shadow.
func (c *Compositor) Compose(bg image.Image, title string) *image.NRGBA {
	canvas := imaging.Fill(bg, c.opts.Width, c.opts.Height, imaging.Center, imaging.Lanczos)
	darkenBottom(canvas)

	lines := WrapText(strings.ToUpperSpecial(unicode.TurkishCase, title), c.opts.MaxChars)
	c.drawLines(canvas, lines, shadowOffset, shadowColor)
	c.drawLines(canvas, lines, 0, color.White)

	return flatten(canvas)
}

func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save cover %s: %w", path, err)
	}
	return nil
}

func darkenBottom(img *image.NRGBA) {
	b := img.Bounds()
	gh := b.Dy() / 3
	if gh == 0 {
		return
	}
	start := b.Max.Y - gh
	for y := start; y < b.Max.Y; y++ {
		alpha := uint8(gradientMaxAlpha * (y - start) / gh)
		row := image.Rect(b.Min.X, y, b.Max.X, y+1)
		draw.Draw(img, row, image.NewUniform(color.NRGBA{A: alpha}), image.Point{}, draw.Over)
	}
}

func (c *Compositor) drawLines(dst *image.NRGBA, lines []string, offset int, col color.Color) {
	if len(lines) == 0 {
		return
	}

	metrics := c.face.Metrics()
	lineHeight := metrics.Height.Ceil() + lineSpacing
	ascent := metrics.Ascent.Ceil()
	blockHeight := len(lines)*lineHeight - lineSpacing
	top := dst.Bounds().Dy() - blockHeight - bottomMargin

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: c.face}
	for i, line := range lines {
		width := d.MeasureString(line).Ceil()
		x := (dst.Bounds().Dx()-width)/2 + offset
		y := top + i*lineHeight + ascent + offset
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
}

// flatten composites img over opaque black; JPEG has no alpha channel.
func flatten(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	return imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.Black), img, image.Point{}, 1.0)
}
