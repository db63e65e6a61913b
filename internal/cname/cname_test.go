package cname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tables := []struct {
		in, want string
	}{
		{"icon", "ICON"},
		{"droid_sans_20", "DROID_SANS_20"},
		{"battery-low", "BATTERY_LOW"},
		{"9patch", "_9PATCH"},
		{"a b.c", "A_B_C"},
		{"café", "CAF_"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Identifier(table.in))
		assert.NoError(t, Valid(Identifier(table.in)))
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "LOGO", Stem("/res/logo.png"))
	assert.Equal(t, "MENU_ICON", Stem("res/menu-icon.tiff"))
}

func TestValid(t *testing.T) {
	assert.NoError(t, Valid("droid_sans_20"))
	assert.Error(t, Valid(""))
	assert.Error(t, Valid("9lives"))
	assert.Error(t, Valid("has space"))
}
