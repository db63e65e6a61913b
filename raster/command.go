package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

var errNoCommand = errors.New("raster: no command")

// Command runs an external tool to rasterize a font. The font path, point
// size and output directory are appended to Args, so with FontForge this
// would be something like:
//
//	ffpython font_tools.py glyphs
type Command struct {
	Args []string
}

// Rasterize implements Rasterizer.
func (c *Command) Rasterize(ctx context.Context, font string, size float64, dir string) error {
	if len(c.Args) == 0 {
		return errNoCommand
	}

	args := append(c.Args[1:len(c.Args):len(c.Args)], font, strconv.FormatFloat(size, 'f', -1, 64), dir)

	cmd := exec.CommandContext(ctx, c.Args[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if out = bytes.TrimSpace(out); len(out) > 0 {
			return fmt.Errorf("raster: %s: %w: %s", c.Args[0], err, out)
		}
		return fmt.Errorf("raster: %s: %w", c.Args[0], err)
	}

	return nil
}
