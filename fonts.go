package picores

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/picores/glyph"
	"github.com/bodgit/picores/internal/cname"
	"github.com/bodgit/picores/manifest"
	"github.com/bodgit/picores/raster"
)

func (c *Compiler) compileFont(ctx context.Context, entry manifest.Entry) error {
	if _, err := os.Stat(entry.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrSourceMissing, err)
		}
		return err
	}

	dir, err := ioutil.TempDir("", "picores")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := c.rasterizer.Rasterize(ctx, entry.Path, entry.Size, dir); err != nil {
		return fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	images, err := raster.Load(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	f := glyph.NewFont(entry.Name)
	for code, m := range images {
		if m == nil {
			continue
		}
		g, err := glyph.Pack(m)
		if err != nil {
			return fmt.Errorf("character code %d: %w", code, err)
		}
		if err := f.Set(code, g); err != nil {
			return err
		}
	}

	out := filepath.Join(c.out, strings.ToLower(cname.Identifier(entry.Name))+".h")
	if err := writeFile(out, func(w *os.File) error {
		return glyph.Encode(w, f)
	}); err != nil {
		return err
	}

	c.logger.Printf("Compiled \"%s\" at %g points with %d glyphs\n", entry.Path, entry.Size, f.Length())

	return nil
}

// CompileFonts compiles every font listed in the manifest file.
func (c *Compiler) CompileFonts(file string) error {
	entries, err := manifest.ParseFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %v", ErrSourceMissing, err)
		}
		return &AssetError{Asset: file, Err: err}
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	seen := make(map[string]struct{})
	for _, entry := range entries {
		ident := cname.Identifier(entry.Name)
		if _, ok := seen[ident]; ok {
			return &AssetError{Asset: entry.Name, Err: fmt.Errorf("duplicate font name \"%s\"", ident)}
		}
		seen[ident] = struct{}{}

		if err := c.compileFont(ctx, entry); err != nil {
			return &AssetError{Asset: entry.Name, Err: err}
		}
	}

	return nil
}
