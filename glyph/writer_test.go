package glyph

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	f := NewFont("tiny_8")

	g, err := Pack(grayRow(0xa, 0xb, 0xc, 0xd, 0xe, 0xf, 0x0, 0x1, 0x2))
	require.NoError(t, err)
	require.NoError(t, f.Set('!', g))

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, f))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, `#pragma once

#include <stddef.h>
#include <stdint.h>

#define TINY_8_33_LEN 7
static const uint8_t TINY_8_33[TINY_8_33_LEN] = {
	9, 1, 0xAB, 0xCD, 0xEF, 0x01, 0x20,
};

static inline const uint8_t *tiny_8_lookup(uint8_t c)
{
	switch (c) {
	case 0: return NULL;
`))
	assert.Contains(t, out, "\tcase 32: return NULL;\n\tcase 33: return TINY_8_33;\n\tcase 34: return NULL;\n")
	assert.True(t, strings.HasSuffix(out, "\tcase 255: return NULL;\n\t}\n\treturn NULL;\n}\n"))
}

func TestEncodeDispatchTotal(t *testing.T) {
	f := NewFont("Mixed")
	for _, code := range []int{0, 'a', 'z', 200, 255} {
		g, err := Pack(grayRow(0x1, 0x2, 0x3))
		require.NoError(t, err)
		require.NoError(t, f.Set(code, g))
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, f))
	out := b.String()

	assert.Equal(t, NumCodes, strings.Count(out, "\tcase "))
	for code := 0; code < NumCodes; code++ {
		prefix := fmt.Sprintf("\tcase %d: return ", code)
		require.Equal(t, 1, strings.Count(out, prefix), code)
		if f.Glyph(byte(code)) != nil {
			assert.Contains(t, out, fmt.Sprintf("%sMIXED_%d;\n", prefix, code))
			assert.Contains(t, out, fmt.Sprintf("#define MIXED_%d_LEN 4\n", code))
		} else {
			assert.Contains(t, out, prefix+"NULL;\n")
		}
	}
	assert.Equal(t, 5, strings.Count(out, "#define "))
}

func TestEncodeWrap(t *testing.T) {
	f := NewFont("wide")

	nibbles := make([]byte, 40)
	g, err := Pack(grayRow(nibbles...))
	require.NoError(t, err)
	require.NoError(t, f.Set('W', g))

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, f))

	// 22 values; a full line of twelve and the remaining ten
	assert.Contains(t, b.String(), "#define WIDE_87_LEN 22\n"+
		"static const uint8_t WIDE_87[WIDE_87_LEN] = {\n"+
		"\t40, 1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,\n"+
		"\t0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,\n"+
		"};\n")
}

func TestEncodeInvalidName(t *testing.T) {
	assert.Error(t, Encode(new(bytes.Buffer), NewFont("")))
}
