package picores

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/png"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/picores/bitmap"
	"github.com/bodgit/picores/internal/cname"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func (c *Compiler) cacheOptions() string {
	return fmt.Sprintf("colors=%d", c.colors)
}

func (c *Compiler) compileBitmap(file string, table *bitmap.Table) error {
	ident, err := table.Add(cname.Stem(file))
	if err != nil {
		return &AssetError{Asset: file, Err: err}
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %v", ErrSourceMissing, err)
		}
		return &AssetError{Asset: file, Err: err}
	}

	out := filepath.Join(c.out, bitmap.Header(ident))
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	if c.cache != nil {
		fragment, err := c.cache.Find(ident, sha, c.cacheOptions())
		if err != nil {
			return &AssetError{Asset: file, Err: err}
		}
		if fragment != nil {
			if err := writeFile(out, func(f *os.File) error {
				_, err := f.Write(fragment)
				return err
			}); err != nil {
				return &AssetError{Asset: file, Err: err}
			}
			c.logger.Printf("Reused \"%s\" for \"%s\"\n", ident, file)
			return nil
		}
	}

	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return &AssetError{Asset: file, Err: err}
	}

	if c.colors > 0 {
		m = bitmap.Reduce(m, c.colors)
	}

	var s bitmap.Sentinels
	if err := writeFile(out, func(f *os.File) (err error) {
		s, err = bitmap.Encode(f, ident, m)
		return err
	}); err != nil {
		return &AssetError{Asset: file, Err: err}
	}

	c.logger.Printf("Compiled \"%s\" as \"%s\", transparency 0x%04X, run-length 0x%04X\n", file, ident, s.Transparent, s.RunLength)

	if c.cache != nil {
		fragment, err := ioutil.ReadFile(out)
		if err != nil {
			return &AssetError{Asset: file, Err: err}
		}
		if err := c.cache.Store(ident, sha, c.cacheOptions(), fragment); err != nil {
			return &AssetError{Asset: file, Err: err}
		}
	}

	return nil
}
