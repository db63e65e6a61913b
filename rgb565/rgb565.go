/*
Package rgb565 implements the 16-bit 5-6-5 color used by the display along
with the binary transparency policy applied when quantizing source pixels.

Quantization simply drops the low bits of each 8-bit channel. Any pixel with
an alpha value at or below OpacityThreshold is considered fully transparent,
there are no intermediate levels.
*/
package rgb565

import "image/color"

// OpacityThreshold is the highest 8-bit alpha value that is still treated as
// transparent.
const OpacityThreshold = 200

const (
	mask5 = 0xf8
	mask6 = 0xfc
)

// Color is a packed 16-bit RRRRRGGGGGGBBBBB color. It implements the
// color.Color interface and is always fully opaque.
type Color uint16

// FromRGB packs 8-bit channels into a Color.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r&mask5)<<8 | uint16(g&mask6)<<3 | uint16(b>>3))
}

// Components returns the channels expanded back to 8 bits. Low bits are
// filled by replicating the high bits so that 0x1f maps to 0xff.
func (c Color) Components() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1f)
	g6 := uint8(c >> 5 & 0x3f)
	b5 := uint8(c & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

// Model converts any color to a Color, ignoring alpha.
var Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB(n.R, n.G, n.B)
}

// Quantize converts c to a Color. It returns false if the color is
// transparent according to OpacityThreshold.
func Quantize(c color.Color) (Color, bool) {
	if q, ok := c.(Color); ok {
		return q, true
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A <= OpacityThreshold {
		return 0, false
	}
	return FromRGB(n.R, n.G, n.B), true
}
