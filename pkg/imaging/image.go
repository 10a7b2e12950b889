package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Image is a row-major buffer of display-ready colors.
// Row 0 is the top of the picture. Colors are stored after gamma correction;
// Quantize maps them to bytes.
type Image struct {
	Width  uint32
	Height uint32
	Pixels []core.Color
}

// NewImage allocates a black image
func NewImage(width, height uint32) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, int(width)*int(height)),
	}
}

// FromFunc builds an image by evaluating fn for every pixel, top row first
func FromFunc(width, height uint32, fn func(x, y uint32) core.Color) *Image {
	img := NewImage(width, height)
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			img.Pixels[img.index(x, y)] = fn(x, y)
		}
	}
	return img
}

// NewGradientImage creates the test card: red grows left to right, green
// grows top to bottom, blue is a constant quarter
func NewGradientImage(width, height uint32) *Image {
	return FromFunc(width, height, func(x, y uint32) core.Color {
		return core.NewColor(
			float64(x)/float64(width),
			float64(y)/float64(height),
			0.25,
		)
	})
}

func (img *Image) index(x, y uint32) int {
	return int(y)*int(img.Width) + int(x)
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Color) {
	img.Pixels[img.index(uint32(x), uint32(y))] = c
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Color {
	return img.Pixels[img.index(uint32(x), uint32(y))]
}

// Validate checks that the pixel buffer matches the declared dimensions
func (img *Image) Validate() error {
	if uint64(img.Width)*uint64(img.Height) != uint64(len(img.Pixels)) {
		return &InconsistentDimensionsError{
			Height:     img.Height,
			Width:      img.Width,
			PixelCount: len(img.Pixels),
		}
	}
	return nil
}

// Quantize converts a color channel in [0, 1) to a byte.
// Values are clamped to [0, 0.999] before scaling by 256; NaN becomes 0.
func Quantize(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(256 * math.Max(0, math.Min(0.999, c)))
}

// QuantizeColor converts all three channels of c
func QuantizeColor(c core.Color) color.RGBA {
	return color.RGBA{
		R: Quantize(c.X),
		G: Quantize(c.Y),
		B: Quantize(c.Z),
		A: 255,
	}
}

// ToRGBA converts the image for the standard library encoders
func (img *Image) ToRGBA() (*image.RGBA, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	for y := 0; y < int(img.Height); y++ {
		for x := 0; x < int(img.Width); x++ {
			rgba.SetRGBA(x, y, QuantizeColor(img.At(x, y)))
		}
	}
	return rgba, nil
}
