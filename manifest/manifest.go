/*
Package manifest parses the font manifest listing which fonts to compile and
at what size.

Each line holds three whitespace separated fields; the font name used for the
generated identifiers, the path to the font file and the point size:

	droid_sans_20 DroidSans.ttf 20

Blank lines and lines starting with # are ignored.
*/
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is returned for any line that cannot be parsed.
var ErrMalformed = errors.New("manifest: malformed line")

// Entry is a single font to compile.
type Entry struct {
	Name string
	Path string
	Size float64
}

func parseLine(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	size, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || size <= 0 {
		return Entry{}, fmt.Errorf("invalid size %q", fields[2])
	}

	return Entry{
		Name: fields[0],
		Path: fields[1],
		Size: size,
	}, nil
}

// Parse reads every entry from r.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, n, err)
		}
		entries = append(entries, e)
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ParseFile reads every entry from the named file. Relative font paths are
// resolved against the directory containing the manifest.
func ParseFile(file string) ([]Entry, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(file)
	for i := range entries {
		if !filepath.IsAbs(entries[i].Path) {
			entries[i].Path = filepath.Join(dir, entries[i].Path)
		}
	}

	return entries, nil
}
