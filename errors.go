package picores

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing is returned when an image or font file does not
	// exist.
	ErrSourceMissing = errors.New("source missing")
	// ErrRasterization is returned when a font could not be rendered.
	ErrRasterization = errors.New("rasterization failed")
)

// AssetError records the asset that caused a pass to fail.
type AssetError struct {
	Asset string
	Err   error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Asset, e.Err)
}

// Unwrap returns the underlying error.
func (e *AssetError) Unwrap() error {
	return e.Err
}
