package bitmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/picores/internal/cname"
)

// LookupFilename is the expected filename used when writing a Table to disk.
const LookupFilename = "bitmaps.h"

type entry struct {
	key   string
	ident string
}

// Table accumulates the bitmaps compiled in one pass and generates the
// name lookup function used by the firmware. It implements io.WriterTo.
type Table struct {
	entries []entry
	seen    map[string]struct{}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		seen: make(map[string]struct{}),
	}
}

// Length returns the number of bitmaps in the table.
func (t *Table) Length() int {
	return len(t.entries)
}

// Add appends the bitmap compiled from the named source and returns the C
// identifier of its array. Two sources mapping to the same identifier is an
// error.
func (t *Table) Add(name string) (string, error) {
	ident := cname.Identifier(name)
	if err := cname.Valid(ident); err != nil {
		return "", err
	}
	if _, ok := t.seen[ident]; ok {
		return "", fmt.Errorf("bitmap: duplicate name %q", ident)
	}
	t.seen[ident] = struct{}{}
	t.entries = append(t.entries, entry{
		key:   strings.ToLower(ident),
		ident: ident,
	})
	return ident, nil
}

// Names returns the lookup keys in the order they were added.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.key)
	}
	return names
}

// Lookup returns the array identifier the generated code resolves name to.
func (t *Table) Lookup(name string) (string, bool) {
	for _, e := range t.entries {
		if e.key == name {
			return e.ident, true
		}
	}
	return "", false
}

// Header returns the filename of the fragment holding the array ident.
func Header(ident string) string {
	return strings.ToLower(ident) + ".h"
}

// WriteTo writes the lookup fragment to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprint(cw, "#pragma once\n\n#include <stddef.h>\n#include <stdint.h>\n#include <string.h>\n\n")

	for _, e := range t.entries {
		fmt.Fprintf(cw, "#include \"%s\"\n", Header(e.ident))
	}
	if len(t.entries) > 0 {
		fmt.Fprint(cw, "\n")
	}

	fmt.Fprint(cw, "static inline const uint16_t *bitmap_lookup(const char *name)\n{\n")
	for _, e := range t.entries {
		fmt.Fprintf(cw, "\tif (strcmp(name, \"%s\") == 0)\n\t\treturn %s;\n", e.key, e.ident)
	}
	fmt.Fprint(cw, "\treturn NULL;\n}\n")

	return cw.n, cw.w.Flush()
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
