package raster

import (
	"context"
	"image"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const defaultCodes = 128

// Builtin rasterizes TrueType and OpenType fonts without any external
// tools. Every glyph is drawn into a cell as wide as its advance and as tall
// as the font's ascent plus descent, with the baseline at the ascent, so a
// string can be drawn by placing cells side by side. Coverage is stored as
// grey, so ink is bright and the background is black.
type Builtin struct {
	// Codes is the number of character codes to render starting from
	// zero. The default is 128, the ASCII range.
	Codes int
	// DPI defaults to 72 so that one point is one pixel.
	DPI float64
}

func writeGlyph(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}

	return f.Close()
}

// Rasterize implements Rasterizer. Character codes that the font does not
// map to a glyph are skipped.
func (b *Builtin) Rasterize(ctx context.Context, file string, size float64, dir string) error {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}

	codes, dpi := b.Codes, b.DPI
	if codes <= 0 {
		codes = defaultCodes
	}
	if dpi <= 0 {
		dpi = 72
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	var buf sfnt.Buffer
	for code := 0; code < codes; code++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		r := rune(code)
		if index, err := f.GlyphIndex(&buf, r); err != nil {
			return err
		} else if index == 0 {
			continue
		}

		advance, ok := face.GlyphAdvance(r)
		if !ok || advance.Round() <= 0 {
			continue
		}

		m := image.NewGray(image.Rect(0, 0, advance.Round(), height))
		d := font.Drawer{
			Dst:  m,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(0, ascent),
		}
		d.DrawString(string(r))

		if err := writeGlyph(filepath.Join(dir, GlyphFilename(code)), m); err != nil {
			return err
		}
	}

	return nil
}
