package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imaging"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig controls how the image is split up and scheduled
type RenderConfig struct {
	TileSize   int   // Edge length of square tiles in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Tile i draws from a generator seeded with Seed+i
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,  // Auto-detect CPU count
		Seed:       42, // Deterministic output for a given scene
	}
}

// Raytracer renders a scene into an imaging.Image
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer for the scene's configured image size,
// sample count and depth. A nil logger discards progress output.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      s,
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(s.SamplingConfig),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render renders the whole image with a pool of workers. On cancellation
// it returns ctx.Err() and no image.
func (rt *Raytracer) Render(ctx context.Context) (*imaging.Image, RenderStats, error) {
	startTime := time.Now()

	if err := rt.scene.SamplingConfig.Validate(); err != nil {
		return nil, RenderStats{}, errors.Wrap(err, "invalid sampling config")
	}

	img := imaging.NewImage(uint32(rt.width), uint32(rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize, rt.config.Seed)

	workerPool := NewWorkerPool(rt, len(tiles), rt.config.NumWorkers)
	stats := RenderStats{
		SamplesPerPixel: rt.scene.SamplingConfig.SamplesPerPixel,
		NumWorkers:      workerPool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (%d tiles, %d workers)...\n",
		rt.width, rt.height, stats.SamplesPerPixel, rt.scene.SamplingConfig.MaxDepth,
		len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i, Image: img})
	}

	// Every submitted task produces exactly one result, cancelled or not
	var renderErr error
	nextReport := 10
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)

		if percent := completed * 100 / len(tiles); percent >= nextReport {
			rt.logger.Printf("Progress: %d%% (%d/%d tiles)\n", percent, completed, len(tiles))
			nextReport = percent/10*10 + 10
		}
	}
	workerPool.Stop()

	stats.Elapsed = time.Since(startTime)
	stats.finalize()

	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d/%d tiles: %v\n", stats.TilesRendered, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Elapsed, stats.AverageSamples)
	return img, stats, nil
}

// RenderBounds renders the pixels inside bounds into img using random for
// every draw. It checks ctx between pixels.
func (rt *Raytracer) RenderBounds(ctx context.Context, bounds image.Rectangle, img *imaging.Image, random *rand.Rand) (RenderStats, error) {
	sampler := core.NewRandomSampler(random)
	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			color, samples := rt.samplePixel(x, y, sampler)
			img.Set(x, y, color)
			stats.TotalPixels++
			stats.TotalSamples += samples
		}
	}

	stats.TilesRendered = 1
	return stats, nil
}

// samplePixel averages SamplesPerPixel jittered samples for image pixel (x, y)
// and returns the gamma-corrected color. Image row y maps to camera row
// height-1-y, so row 0 is the top of the picture.
func (rt *Raytracer) samplePixel(x, y int, sampler core.Sampler) (core.Color, int) {
	camera := rt.scene.Camera
	j := rt.height - 1 - y

	var ps PixelStats
	for sample := 0; sample < rt.scene.SamplingConfig.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(x) + sampler.Get1D()) / float64(rt.width)
		t := (float64(j) + sampler.Get1D()) / float64(rt.height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}

	return ps.GetColor().GammaCorrect(2.0), ps.SampleCount
}
