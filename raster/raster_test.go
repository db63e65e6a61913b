package raster

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestGlyphFilename(t *testing.T) {
	assert.Equal(t, "glyph_65.png", GlyphFilename(65))

	tables := []struct {
		name string
		code int
		ok   bool
	}{
		{"glyph_0.png", 0, true},
		{"glyph_255.png", 255, true},
		{"glyph_1000.png", 1000, true},
		{"glyph_.png", 0, false},
		{"glyph_-1.png", 0, false},
		{"glyph_65.svg", 0, false},
		{".DS_Store", 0, false},
	}

	for _, table := range tables {
		code, ok := ParseGlyphFilename(table.name)
		assert.Equal(t, table.ok, ok, table.name)
		assert.Equal(t, table.code, code, table.name)
	}
}

func writePNG(t *testing.T, file string, m image.Image) {
	t.Helper()

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	m := image.NewGray(image.Rect(0, 0, 3, 4))
	m.SetGray(1, 1, color.Gray{0xff})
	writePNG(t, filepath.Join(dir, GlyphFilename('x')), m)
	writePNG(t, filepath.Join(dir, GlyphFilename(300)), m)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("junk"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, GlyphFilename('y')), 0755))

	glyphs, err := Load(dir)
	require.NoError(t, err)

	for code, g := range glyphs {
		if code == 'x' {
			assert.Equal(t, m, g)
			continue
		}
		assert.Nil(t, g, code)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, GlyphFilename('a')), []byte("not a png"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, ioutil.WriteFile(file, goregular.TTF, 0644))

	dir := t.TempDir()
	r := &Builtin{}
	require.NoError(t, r.Rasterize(context.Background(), file, 16, dir))

	glyphs, err := Load(dir)
	require.NoError(t, err)

	// Nothing past ASCII
	for code := 128; code < len(glyphs); code++ {
		assert.Nil(t, glyphs[code], code)
	}

	require.NotNil(t, glyphs['A'])
	require.NotNil(t, glyphs['i'])
	require.NotNil(t, glyphs[' '])

	// Every cell is the same height and wider glyphs have wider cells
	assert.Equal(t, glyphs['A'].Bounds().Dy(), glyphs['i'].Bounds().Dy())
	assert.Greater(t, glyphs['W'].Bounds().Dx(), glyphs['i'].Bounds().Dx())

	ink := func(m image.Image) int {
		n := 0
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y > 0x80 {
					n++
				}
			}
		}
		return n
	}
	assert.Greater(t, ink(glyphs['A']), 0)
	assert.Equal(t, 0, ink(glyphs[' ']))
}

func TestBuiltinErrors(t *testing.T) {
	dir := t.TempDir()
	r := &Builtin{}

	err := r.Rasterize(context.Background(), filepath.Join(dir, "missing.ttf"), 16, dir)
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.ttf")
	require.NoError(t, ioutil.WriteFile(bad, []byte("not a font"), 0644))
	assert.Error(t, r.Rasterize(context.Background(), bad, 16, dir))

	file := filepath.Join(dir, "goregular.ttf")
	require.NoError(t, ioutil.WriteFile(file, goregular.TTF, 0644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, r.Rasterize(ctx, file, 16, dir))
}

func TestCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	src := filepath.Join(t.TempDir(), "source.png")
	writePNG(t, src, image.NewGray(image.Rect(0, 0, 2, 2)))

	// The font, size and directory arrive as $0, $1 and $2
	dir := t.TempDir()
	c := &Command{Args: []string{"sh", "-c", `test "$1" = 12.5 && cp "$0" "$2/glyph_66.png"`}}
	require.NoError(t, c.Rasterize(context.Background(), src, 12.5, dir))

	glyphs, err := Load(dir)
	require.NoError(t, err)
	assert.NotNil(t, glyphs['B'])

	c = &Command{Args: []string{"sh", "-c", `echo "no such font" >&2; exit 1`}}
	err = c.Rasterize(context.Background(), src, 12, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such font")
}

func TestCommandErrors(t *testing.T) {
	c := &Command{}
	assert.Equal(t, errNoCommand, c.Rasterize(context.Background(), "font.ttf", 12, t.TempDir()))

	c = &Command{Args: []string{filepath.Join(t.TempDir(), "missing")}}
	assert.Error(t, c.Rasterize(context.Background(), "font.ttf", 12, t.TempDir()))
}
