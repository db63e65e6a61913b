/*
Package picores is a library for compiling images and fonts into C headers
that can be linked directly into the firmware of a small device with no
filesystem.

Images become run-length encoded RGB565 arrays along with a lookup function
to find them by name, fonts become packed 4-bit greyscale glyphs along with a
lookup function to find them by character code. Any failure is fatal to the
whole pass as firmware missing an asset cannot be built.
*/
package picores

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/picores/raster"
)

// Compiler compiles assets into a single output directory.
type Compiler struct {
	out        string
	logger     *log.Logger
	cache      *Cache
	rasterizer raster.Rasterizer
	colors     int
}

// Option configures a Compiler.
type Option func(*Compiler) error

// WithCache stores compiled bitmaps in the named database and reuses them
// when a source hasn't changed.
func WithCache(file string) Option {
	return func(c *Compiler) error {
		cache, err := NewCache(file)
		if err != nil {
			return err
		}
		c.cache = cache
		return nil
	}
}

// WithRasterizer sets how fonts are rendered. The default is
// raster.Builtin.
func WithRasterizer(r raster.Rasterizer) Option {
	return func(c *Compiler) error {
		c.rasterizer = r
		return nil
	}
}

// WithColors reduces every image to at most n colors before it is encoded.
// Zero, the default, leaves images untouched.
func WithColors(n int) Option {
	return func(c *Compiler) error {
		c.colors = n
		return nil
	}
}

// New returns a Compiler writing to the out directory, which is created if
// necessary. A nil logger discards all output.
func New(out string, logger *log.Logger, options ...Option) (*Compiler, error) {
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	c := &Compiler{
		out:        out,
		logger:     logger,
		rasterizer: &raster.Builtin{},
	}

	for _, option := range options {
		if err := option(c); err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Close releases any resources held by the Compiler.
func (c *Compiler) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}
