package bitmap

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/picores/internal/cname"
	"github.com/bodgit/picores/rgb565"
	"github.com/ericpauley/go-quantize/quantize"
)

type encoder struct {
	w   io.WriteSeeker
	bw  *bufio.Writer
	off int64

	// Offsets of every placeholder, per sentinel
	transparent []int64
	runLength   []int64

	used   [numValues]bool
	column int
}

// Errors from the bufio.Writer are sticky and returned by Flush
func (e *encoder) write(s string) {
	n, _ := e.bw.WriteString(s)
	e.off += int64(n)
}

func (e *encoder) writef(format string, a ...interface{}) {
	n, _ := fmt.Fprintf(e.bw, format, a...)
	e.off += int64(n)
}

func (e *encoder) placeholder(offsets *[]int64) {
	*offsets = append(*offsets, e.off)
	e.write(placeholder)
}

func (e *encoder) token(fn func()) {
	if e.column == 0 {
		e.write("\t")
	} else {
		e.write(" ")
	}
	fn()
	e.write(",")
	if e.column++; e.column == perLine {
		e.write("\n")
		e.column = 0
	}
}

func (e *encoder) value(c rgb565.Color, opaque bool) {
	e.token(func() {
		if opaque {
			e.writef("0x%04X", uint16(c))
		} else {
			e.placeholder(&e.transparent)
		}
	})
}

// Runs never cross a column so count always fits in 16 bits
func (e *encoder) run(c rgb565.Color, opaque bool, count int) {
	if count > RunThreshold {
		e.token(func() { e.placeholder(&e.runLength) })
		e.token(func() { e.writef("%d", count) })
		e.value(c, opaque)
		return
	}
	for i := 0; i < count; i++ {
		e.value(c, opaque)
	}
}

func (e *encoder) encodeHeader(name string, width, height int) {
	e.write("#pragma once\n\n#include <stdint.h>\n\n")

	e.writef("static const uint16_t %s = ", transparentName(name))
	e.placeholder(&e.transparent)
	e.write(";\n")

	e.writef("static const uint16_t %s = ", runLengthName(name))
	e.placeholder(&e.runLength)
	e.write(";\n\n")

	e.writef("static const uint16_t %s[] = {\n", name)
	e.writef("\t%d, %d, %s, %s,\n", width, height, transparentName(name), runLengthName(name))
}

func (e *encoder) encodePixels(m image.Image) {
	b := m.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		y := b.Min.Y
		for y < b.Max.Y {
			c, opaque := rgb565.Quantize(m.At(x, y))
			count := 1
			for y++; y < b.Max.Y; y++ {
				if n, ok := rgb565.Quantize(m.At(x, y)); ok != opaque || n != c {
					break
				}
				count++
			}

			if opaque {
				e.used[c] = true
			}

			e.run(c, opaque, count)
		}
	}

	if e.column != 0 {
		e.write("\n")
		e.column = 0
	}
	e.write("};\n")
}

func (e *encoder) unused() (uint16, bool) {
	for i := range e.used {
		if !e.used[i] {
			e.used[i] = true
			return uint16(i), true
		}
	}
	return 0, false
}

func (e *encoder) allocate() (Sentinels, error) {
	var s Sentinels
	var ok bool
	if s.Transparent, ok = e.unused(); !ok {
		return Sentinels{}, ErrSentinelExhausted
	}
	if s.RunLength, ok = e.unused(); !ok {
		return Sentinels{}, ErrSentinelExhausted
	}
	return s, nil
}

func (e *encoder) patch(offsets []int64, v uint16) error {
	literal := []byte(fmt.Sprintf("0x%04X", v))
	for _, off := range offsets {
		if _, err := e.w.Seek(off, io.SeekStart); err != nil {
			return err
		}
		if _, err := e.w.Write(literal); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(name string, m image.Image) (Sentinels, error) {
	start, err := e.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return Sentinels{}, err
	}
	e.off = start

	b := m.Bounds()
	e.encodeHeader(name, b.Dx(), b.Dy())
	e.encodePixels(m)

	if err := e.bw.Flush(); err != nil {
		return Sentinels{}, err
	}
	end := e.off

	s, err := e.allocate()
	if err != nil {
		return Sentinels{}, err
	}

	if err := e.patch(e.transparent, s.Transparent); err != nil {
		return Sentinels{}, err
	}
	if err := e.patch(e.runLength, s.RunLength); err != nil {
		return Sentinels{}, err
	}

	if _, err := e.w.Seek(end, io.SeekStart); err != nil {
		return Sentinels{}, err
	}

	return s, nil
}

// Encode writes the Image m to w as a bitmap fragment declaring an array
// called name, and returns the sentinels that were chosen. The output is
// only valid if no error is returned; on ErrSentinelExhausted w holds
// unpatched placeholders and should be discarded.
func Encode(w io.WriteSeeker, name string, m image.Image) (Sentinels, error) {
	if err := cname.Valid(name); err != nil {
		return Sentinels{}, err
	}

	b := m.Bounds()
	if b.Dx() > maxSize || b.Dy() > maxSize {
		return Sentinels{}, ErrTooLarge
	}

	e := &encoder{
		w:  w,
		bw: bufio.NewWriter(w),
	}

	return e.encode(name, m)
}

// Count the distinct opaque RGB565 values, giving up once there are more
// than limit. Transparent pixels don't use up a color.
func countColors(m image.Image, limit int) int {
	b := m.Bounds()
	colors := make(map[rgb565.Color]struct{})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := rgb565.Quantize(m.At(x, y))
			if !ok {
				continue
			}
			colors[c] = struct{}{}
			if len(colors) > limit {
				return len(colors)
			}
		}
	}
	return len(colors)
}

func opaqueNRGBA(c color.Color) (color.NRGBA, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A <= rgb565.OpacityThreshold {
		return color.NRGBA{}, false
	}
	n.A = 0xff
	return n, true
}

// Reduce returns m reduced to at most n opaque colors using median cut
// quantization. Only opaque pixels feed the quantizer and transparent pixels
// stay transparent. Images already within the limit are returned unchanged.
func Reduce(m image.Image, n int) image.Image {
	if n <= 0 || countColors(m, n) <= n {
		return m
	}

	b := m.Bounds()

	// Lay the opaque pixels out in a single row for the quantizer
	var pix []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c, ok := opaqueNRGBA(m.At(x, y)); ok {
				pix = append(pix, c)
			}
		}
	}
	row := image.NewNRGBA(image.Rect(0, 0, len(pix), 1))
	for x, c := range pix {
		row.SetNRGBA(x, 0, c)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, n), row)

	rm := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := opaqueNRGBA(m.At(x, y))
			if !ok {
				continue
			}
			rm.Set(x, y, p.Convert(c))
		}
	}

	return rm
}
