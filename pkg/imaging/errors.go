package imaging

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedFormat is returned for an output format with no encoder
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEmptyImage is returned when a raster format is asked to encode a 0-pixel image
	ErrEmptyImage = errors.New("image is empty")
)

// InconsistentDimensionsError reports a pixel buffer whose length does not
// match Width*Height. The fields carry the offending values unchanged.
type InconsistentDimensionsError struct {
	Height     uint32
	Width      uint32
	PixelCount int
}

func (e *InconsistentDimensionsError) Error() string {
	return fmt.Sprintf("image size %d*%d does not match pixel count %d", e.Height, e.Width, e.PixelCount)
}
