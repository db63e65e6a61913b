/*
Package bitmap implements the run-length encoded RGB565 bitmap fragment
compiled into the firmware.

A bitmap is written as a C header declaring two 16-bit constants and one
array of 16-bit values. The array starts with the width, height, transparency
sentinel and run-length sentinel, followed by the pixels in column-major
order; for each column x, every row y from top to bottom. A value equal to
the run-length sentinel is followed by a count and a value, and stands for
count repetitions of that value. A value equal to the transparency sentinel
is a transparent pixel, anything else is an RGB565 color.

Both sentinels are picked after the whole image has been scanned as the two
lowest 16-bit values not used by any opaque pixel, so the encoder writes
placeholders and patches them afterwards.
*/
package bitmap

import "errors"

// RunThreshold is the longest run written as individual values. Longer runs
// use the three value run-length form.
const RunThreshold = 4

const (
	headerLen   = 4
	maxSize     = 0xffff
	numValues   = 1 << 16
	placeholder = "0x____"
	perLine     = 8
)

var (
	// ErrSentinelExhausted is returned when an image uses so many colors
	// that two unused values cannot be found.
	ErrSentinelExhausted = errors.New("bitmap: no unused color for sentinel")
	// ErrTooLarge is returned when a dimension does not fit in 16 bits.
	ErrTooLarge = errors.New("bitmap: image is too large")

	errPlaceholder = errors.New("bitmap: unpatched placeholder")
	errNoArray     = errors.New("bitmap: no array declaration")
	errShortHeader = errors.New("bitmap: header is too short")
	errTruncated   = errors.New("bitmap: truncated run")
	errPixelCount  = errors.New("bitmap: pixel count does not match dimensions")
)

// Sentinels holds the two reserved values chosen for a bitmap.
type Sentinels struct {
	Transparent uint16
	RunLength   uint16
}

func transparentName(name string) string {
	return name + "_TRANSPARENCY"
}

func runLengthName(name string) string {
	return name + "_RUN_LENGTH"
}
