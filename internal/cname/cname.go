// Package cname derives C identifiers from asset names.
package cname

import (
	"errors"
	"path/filepath"
	"strings"
)

var errInvalid = errors.New("cname: invalid identifier")

// Identifier returns s upper-cased with every character that is not valid in
// a C identifier replaced by an underscore. A leading digit is prefixed with
// an underscore.
func Identifier(s string) string {
	var b strings.Builder
	for i, r := range strings.ToUpper(s) {
		switch {
		case r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
		default:
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Stem returns the identifier for a source file, based on its base name
// without the extension.
func Stem(file string) string {
	base := filepath.Base(file)
	return Identifier(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Valid returns an error unless s is a non-empty C identifier.
func Valid(s string) error {
	if s == "" {
		return errInvalid
	}
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return errInvalid
		}
	}
	return nil
}
