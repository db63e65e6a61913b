package glyph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/picores/internal/cname"
)

type encoder struct {
	w *bufio.Writer
}

func glyphName(font string, code int) string {
	return fmt.Sprintf("%s_%d", font, code)
}

// LookupName returns the name of the lookup function generated for a font.
func LookupName(font string) string {
	return strings.ToLower(font) + "_lookup"
}

func (e *encoder) encodeGlyph(name string, g *Glyph) {
	fmt.Fprintf(e.w, "#define %s_LEN %d\n", name, g.Len())
	fmt.Fprintf(e.w, "static const uint8_t %s[%s_LEN] = {\n", name, name)

	for i, b := range g.Bytes() {
		switch {
		case i%perLine == 0:
			e.w.WriteString("\t")
		default:
			e.w.WriteString(" ")
		}
		if i < headerLen {
			fmt.Fprintf(e.w, "%d,", b)
		} else {
			fmt.Fprintf(e.w, "0x%02X,", b)
		}
		if i%perLine == perLine-1 || i == g.Len()-1 {
			e.w.WriteString("\n")
		}
	}

	e.w.WriteString("};\n\n")
}

func (e *encoder) encodeLookup(f *Font, name string) {
	fmt.Fprintf(e.w, "static inline const uint8_t *%s(uint8_t c)\n{\n", LookupName(name))
	e.w.WriteString("\tswitch (c) {\n")
	for code, g := range f.Glyphs {
		if g == nil {
			fmt.Fprintf(e.w, "\tcase %d: return NULL;\n", code)
			continue
		}
		fmt.Fprintf(e.w, "\tcase %d: return %s;\n", code, glyphName(name, code))
	}
	e.w.WriteString("\t}\n\treturn NULL;\n}\n")
}

func (e *encoder) encode(f *Font, name string) error {
	e.w.WriteString("#pragma once\n\n#include <stddef.h>\n#include <stdint.h>\n\n")

	for code, g := range f.Glyphs {
		if g != nil {
			e.encodeGlyph(glyphName(name, code), g)
		}
	}

	e.encodeLookup(f, name)

	return e.w.Flush()
}

// Encode writes the Font f to w as a font fragment.
func Encode(w io.Writer, f *Font) error {
	name := cname.Identifier(f.Name)
	if err := cname.Valid(name); err != nil {
		return err
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(f, name)
}
