package renderer

import (
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imaging"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	SamplesPerPixel int           // Samples requested per pixel
	TilesRendered   int           // Tiles that finished without cancellation
	NumWorkers      int           // Workers used
	Elapsed         time.Duration // Wall time of the render
}

// merge adds the counters of a finished tile
func (s *RenderStats) merge(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.TilesRendered += tile.TilesRendered
}

// finalize derives the averages once all tiles are merged
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean luminance of the stored
// (gamma-corrected) pixel colors
func CalculateAverageLuminance(img *imaging.Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(img.Pixels))
}
