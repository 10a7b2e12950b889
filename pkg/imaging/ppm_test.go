package imaging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestWritePPM(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, core.NewColor(1, 0.5, 0))
	img.Set(1, 0, core.NewColor(0.25, 0, 2))

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n2 1\n255\n255 128 0\n64 0 255\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWritePPM_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, NewGradientImage(0, 0)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "P3\n0 0\n255\n" {
		t.Errorf("Expected header only, got %q", buf.String())
	}
}

func TestWritePPM_GradientLineCount(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, NewGradientImage(8, 13)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3+13*8 {
		t.Errorf("Expected %d lines, got %d", 3+13*8, len(lines))
	}
	if lines[3] != "0 0 64" {
		t.Errorf("Expected first pixel %q, got %q", "0 0 64", lines[3])
	}
}

func TestWritePPM_RejectsBadDimensionsBeforeWriting(t *testing.T) {
	img := NewGradientImage(8, 13)
	img.Height = 12

	var buf bytes.Buffer
	err := WritePPM(&buf, img)

	var dimErr *InconsistentDimensionsError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Expected InconsistentDimensionsError, got %v", err)
	}
	if dimErr.Height != 12 || dimErr.Width != 8 || dimErr.PixelCount != 104 {
		t.Errorf("Unexpected error fields %+v", dimErr)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written, got %d bytes", buf.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePPM_WriterError(t *testing.T) {
	err := WritePPM(failingWriter{}, NewGradientImage(4, 4))
	if err == nil {
		t.Fatal("Expected write error")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected underlying cause in error, got %v", err)
	}
}
