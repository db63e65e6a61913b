/*
Package glyph implements the packed 4-bit greyscale font fragment compiled
into the firmware.

Each glyph is an array of bytes starting with its width and height, followed
by one 4-bit sample per pixel in row-major order, two samples per byte with
the first sample in the upper nibble. If there is an odd number of pixels the
lower nibble of the final byte is zero. A font is a set of up to 256 glyphs
indexed by character code along with a lookup function that maps every code
to either its glyph or NULL.
*/
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	// NumCodes is the number of character codes a font can map.
	NumCodes = 256

	headerLen = 2
	maxSize   = 0xff
	perLine   = 12
)

// ErrTooLarge is returned when a glyph dimension does not fit in a byte.
var ErrTooLarge = errors.New("glyph: image is too large")

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// Glyph is a single packed glyph.
type Glyph struct {
	Width  int
	Height int
	Pix    []byte
}

// Pack reduces each pixel of m to 4 bits of grey and packs them two to a
// byte.
func Pack(m image.Image) (*Glyph, error) {
	b := m.Bounds()
	if b.Dx() > maxSize || b.Dy() > maxSize {
		return nil, ErrTooLarge
	}

	g := &Glyph{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, (b.Dx()*b.Dy()+1)>>1),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Keep the top four bits, the lower nibble of the final byte
			// stays zero if there is an odd number of pixels
			v := upperNibble(color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y)
			if i&1 == 0 {
				g.Pix[i>>1] = v
			} else {
				g.Pix[i>>1] |= v >> 4
			}
			i++
		}
	}

	return g, nil
}

// Len returns the length of the array including the two dimension values.
func (g *Glyph) Len() int {
	return headerLen + len(g.Pix)
}

// Bytes returns the glyph array as written to the fragment.
func (g *Glyph) Bytes() []byte {
	b := make([]byte, 0, g.Len())
	b = append(b, byte(g.Width), byte(g.Height))
	return append(b, g.Pix...)
}

// Sample returns the 4-bit sample at x, y.
func (g *Glyph) Sample(x, y int) byte {
	i := y*g.Width + x
	if i&1 == 0 {
		return upperNibble(g.Pix[i>>1]) >> 4
	}
	return lowerNibble(g.Pix[i>>1])
}

// Font is a named set of glyphs indexed by character code.
type Font struct {
	Name   string
	Glyphs [NumCodes]*Glyph
}

// NewFont returns an empty font.
func NewFont(name string) *Font {
	return &Font{
		Name: name,
	}
}

// Set stores g as the glyph for the given character code.
func (f *Font) Set(code int, g *Glyph) error {
	if code < 0 || code >= NumCodes {
		return fmt.Errorf("glyph: character code %d out of range", code)
	}
	f.Glyphs[code] = g
	return nil
}

// Glyph returns the glyph for the given character code or nil if there
// isn't one.
func (f *Font) Glyph(code byte) *Glyph {
	return f.Glyphs[code]
}

// Length returns the number of character codes with a glyph.
func (f *Font) Length() int {
	n := 0
	for _, g := range f.Glyphs {
		if g != nil {
			n++
		}
	}
	return n
}
