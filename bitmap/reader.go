package bitmap

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/picores/rgb565"
)

// Asset is a parsed bitmap fragment.
type Asset struct {
	Name      string
	Width     int
	Height    int
	Sentinels Sentinels

	// Data holds the values following the four value header
	Data []uint16
}

// Pixels expands any runs and returns Width * Height values in column-major
// order.
func (a *Asset) Pixels() ([]uint16, error) {
	n := a.Width * a.Height
	pix := make([]uint16, 0, n)
	for i := 0; i < len(a.Data); {
		if a.Data[i] != a.Sentinels.RunLength {
			pix = append(pix, a.Data[i])
			i++
			continue
		}
		if i+2 >= len(a.Data) {
			return nil, errTruncated
		}
		for j := 0; j < int(a.Data[i+1]); j++ {
			pix = append(pix, a.Data[i+2])
		}
		i += 3
	}
	if len(pix) != n {
		return nil, errPixelCount
	}
	return pix, nil
}

type decoder struct {
	constants map[string]uint16
	asset     Asset
	header    []uint16
}

func (d *decoder) value(s string) (uint16, error) {
	if s == placeholder {
		return 0, errPlaceholder
	}
	if v, ok := d.constants[s]; ok {
		return v, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bitmap: invalid value %q", s)
	}
	return uint16(v), nil
}

// Parses "static const uint16_t NAME = VALUE;"
func (d *decoder) readConstant(line string) error {
	fields := strings.Fields(strings.TrimSuffix(line, ";"))
	if len(fields) != 6 || fields[4] != "=" {
		return fmt.Errorf("bitmap: invalid declaration %q", line)
	}
	v, err := d.value(fields[5])
	if err != nil {
		return err
	}
	d.constants[fields[3]] = v
	return nil
}

func (d *decoder) readValues(line string) error {
	for _, s := range strings.Split(line, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		v, err := d.value(s)
		if err != nil {
			return err
		}
		if len(d.header) < headerLen {
			d.header = append(d.header, v)
			continue
		}
		d.asset.Data = append(d.asset.Data, v)
	}
	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.constants = make(map[string]uint16)

	var inArray, seenArray bool
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		switch {
		case inArray && line == "};":
			inArray = false
		case inArray:
			if err := d.readValues(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, "static const uint16_t ") && strings.HasSuffix(line, "[] = {"):
			d.asset.Name = strings.TrimSuffix(strings.TrimPrefix(line, "static const uint16_t "), "[] = {")
			inArray, seenArray = true, true
		case strings.HasPrefix(line, "static const uint16_t "):
			if err := d.readConstant(line); err != nil {
				return err
			}
		}
	}
	if err := s.Err(); err != nil {
		return err
	}

	if !seenArray {
		return errNoArray
	}
	if len(d.header) < headerLen {
		return errShortHeader
	}

	d.asset.Width = int(d.header[0])
	d.asset.Height = int(d.header[1])
	d.asset.Sentinels = Sentinels{
		Transparent: d.header[2],
		RunLength:   d.header[3],
	}

	return nil
}

// Parse reads a bitmap fragment from r.
func Parse(r io.Reader) (*Asset, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return &d.asset, nil
}

// Decode reads a bitmap fragment from r and returns it as an image.Image.
// Transparent pixels are fully transparent black.
func Decode(r io.Reader) (image.Image, error) {
	a, err := Parse(r)
	if err != nil {
		return nil, err
	}

	pix, err := a.Pixels()
	if err != nil {
		return nil, err
	}

	m := image.NewNRGBA(image.Rect(0, 0, a.Width, a.Height))
	for i, v := range pix {
		x, y := i/a.Height, i%a.Height
		if v == a.Sentinels.Transparent {
			continue
		}
		r, g, b := rgb565.Color(v).Components()
		m.SetNRGBA(x, y, color.NRGBA{r, g, b, 0xff})
	}

	return m, nil
}

// DecodeConfig returns the color model and dimensions of a bitmap fragment
// without expanding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	a, err := Parse(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      a.Width,
		Height:     a.Height,
	}, nil
}
