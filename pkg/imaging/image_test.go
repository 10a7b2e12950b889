package imaging

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestNewGradientImage_Empty(t *testing.T) {
	img := NewGradientImage(0, 0)

	if img.Width != 0 || img.Height != 0 || len(img.Pixels) != 0 {
		t.Errorf("Expected empty 0x0 image, got %dx%d with %d pixels", img.Width, img.Height, len(img.Pixels))
	}
	if err := img.Validate(); err != nil {
		t.Errorf("Empty image should validate, got %v", err)
	}
}

func TestNewGradientImage_Size(t *testing.T) {
	img := NewGradientImage(8, 13)

	if len(img.Pixels) != 13*8 {
		t.Errorf("Expected %d pixels, got %d", 13*8, len(img.Pixels))
	}
	if img.Height != 13 || img.Width != 8 {
		t.Errorf("Expected 8x13, got %dx%d", img.Width, img.Height)
	}
	if err := img.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}

	// Green grows downward from the top row
	if top, bottom := img.At(0, 0), img.At(0, 12); top.Y != 0 || bottom.Y <= top.Y {
		t.Errorf("Expected green to grow from top (%v) to bottom (%v)", top, bottom)
	}
}

func TestValidate_InconsistentDimensions(t *testing.T) {
	img := NewGradientImage(8, 13)
	img.Height = 12

	err := img.Validate()
	if err == nil {
		t.Fatal("Expected error for mismatched dimensions")
	}

	var dimErr *InconsistentDimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Expected InconsistentDimensionsError, got %T: %v", err, err)
	}
	if dimErr.Height != 12 || dimErr.Width != 8 || dimErr.PixelCount != 13*8 {
		t.Errorf("Expected h=12 w=8 count=104, got h=%d w=%d count=%d", dimErr.Height, dimErr.Width, dimErr.PixelCount)
	}
}

func TestFromFunc_VisitsEveryPixel(t *testing.T) {
	visits := make(map[[2]uint32]int)
	img := FromFunc(3, 2, func(x, y uint32) core.Color {
		visits[[2]uint32{x, y}]++
		return core.NewColor(float64(x), float64(y), 0)
	})

	if len(visits) != 6 {
		t.Fatalf("Expected 6 distinct pixels, got %d", len(visits))
	}
	for key, count := range visits {
		if count != 1 {
			t.Errorf("Pixel %v visited %d times", key, count)
		}
	}
	if c := img.At(2, 1); c != core.NewColor(2, 1, 0) {
		t.Errorf("Expected pixel (2,1) to hold its coordinates, got %v", c)
	}
	if c := img.Pixels[5]; c != core.NewColor(2, 1, 0) {
		t.Errorf("Expected row-major layout, got %v at index 5", c)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"quarter", 0.25, 64},
		{"half", 0.5, 128},
		{"upper clamp", 0.999, 255},
		{"one", 1, 255},
		{"overexposed", 12.5, 255},
		{"negative", -0.5, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 255},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.value); got != tt.expected {
				t.Errorf("Quantize(%f) = %d, expected %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestToRGBA_RowOrder(t *testing.T) {
	img := NewImage(2, 2)
	img.Set(0, 0, core.NewColor(1, 0, 0))
	img.Set(1, 1, core.NewColor(0, 0, 1))

	rgba, err := img.ToRGBA()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if c := rgba.RGBAAt(0, 0); c.R != 255 || c.B != 0 {
		t.Errorf("Expected red at top-left, got %v", c)
	}
	if c := rgba.RGBAAt(1, 1); c.B != 255 || c.R != 0 {
		t.Errorf("Expected blue at bottom-right, got %v", c)
	}
	if c := rgba.RGBAAt(1, 0); c.A != 255 || c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("Expected opaque black, got %v", c)
	}
}
