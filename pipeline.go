package picores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/picores/bitmap"
)

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
}

func (c *Compiler) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// There is only ever one of these so assets are compiled one at a time and
// in the order they were found
func (c *Compiler) bitmapWorker(ctx context.Context, in <-chan string, table *bitmap.Table) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := c.compileBitmap(file, table); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// CompileBitmaps compiles every image found under path, followed by the
// lookup table covering all of them.
func (c *Compiler) CompileBitmaps(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %v", ErrSourceMissing, err)
		}
		return &AssetError{Asset: path, Err: err}
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	table := bitmap.NewTable()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	errc, err = c.bitmapWorker(ctx, files, table)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	lookup := filepath.Join(c.out, bitmap.LookupFilename)
	if err := writeFile(lookup, func(f *os.File) error {
		_, err := table.WriteTo(f)
		return err
	}); err != nil {
		return &AssetError{Asset: lookup, Err: err}
	}

	c.logger.Printf("Wrote lookup table for %d bitmaps\n", table.Length())

	return nil
}
