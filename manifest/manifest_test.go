package manifest

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(`# name path size
droid_sans_20 DroidSans.ttf 20

droid_sans_14	fonts/DroidSans.ttf	14.5
`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"droid_sans_20", "DroidSans.ttf", 20},
		{"droid_sans_14", "fonts/DroidSans.ttf", 14.5},
	}, entries)
}

func TestParseMalformed(t *testing.T) {
	tables := []struct {
		name, input string
	}{
		{"too few", "droid_sans DroidSans.ttf\n"},
		{"too many", "droid_sans DroidSans.ttf 20 bold\n"},
		{"not a number", "droid_sans DroidSans.ttf big\n"},
		{"zero", "droid_sans DroidSans.ttf 0\n"},
		{"later line", "a a.ttf 10\nb\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(table.input))
			assert.True(t, errors.Is(err, ErrMalformed), err)
		})
	}

	_, err := Parse(strings.NewReader("a a.ttf 10\n\nb b.ttf\n"))
	assert.EqualError(t, err, "manifest: malformed line: line 3: expected 3 fields, got 2")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fontspec")
	abs := filepath.Join(dir, "abs.ttf")

	require.NoError(t, ioutil.WriteFile(file, []byte("rel DroidSans.ttf 20\nabs "+abs+" 12\n"), 0644))

	entries, err := ParseFile(file)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"rel", filepath.Join(dir, "DroidSans.ttf"), 20},
		{"abs", abs, 12},
	}, entries)

	_, err = ParseFile(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))
}
