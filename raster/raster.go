/*
Package raster renders the glyphs of an outline font to greyscale images, one
file per character code, which are then packed by the glyph package.

Rendering is either delegated to an external tool such as FontForge, or done
in-process using golang.org/x/image/font/opentype. Either way the result is a
directory of PNG files named glyph_<code>.png.
*/
package raster

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // register decoder for Load
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/picores/glyph"
)

const (
	filenamePrefix = "glyph_"
	filenameSuffix = ".png"
)

// Rasterizer writes one image per character code present in a font.
type Rasterizer interface {
	Rasterize(ctx context.Context, font string, size float64, dir string) error
}

// GlyphFilename returns the filename used for the given character code.
func GlyphFilename(code int) string {
	return filenamePrefix + strconv.Itoa(code) + filenameSuffix
}

// ParseGlyphFilename returns the character code embedded in a glyph
// filename. It returns false if the name does not follow the convention.
func ParseGlyphFilename(name string) (int, bool) {
	if !strings.HasPrefix(name, filenamePrefix) || !strings.HasSuffix(name, filenameSuffix) {
		return 0, false
	}
	code, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, filenamePrefix), filenameSuffix))
	if err != nil || code < 0 {
		return 0, false
	}
	return code, true
}

func loadImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("raster: %s: %w", filepath.Base(file), err)
	}
	return m, nil
}

// Load reads the glyph images written to dir by a Rasterizer. Files that
// don't follow the naming convention, such as .DS_Store, or that name a
// code outside of 0-255 are ignored.
func Load(dir string) ([glyph.NumCodes]image.Image, error) {
	var glyphs [glyph.NumCodes]image.Image

	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return glyphs, err
	}

	for _, file := range files {
		if !file.Mode().IsRegular() {
			continue
		}
		code, ok := ParseGlyphFilename(file.Name())
		if !ok || code >= glyph.NumCodes {
			continue
		}
		m, err := loadImage(filepath.Join(dir, file.Name()))
		if err != nil {
			return glyphs, err
		}
		glyphs[code] = m
	}

	return glyphs, nil
}
