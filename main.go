package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/imaging"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	configPath string
	scenesDir  string
	output     string
	width      int
	samples    int
	depth      int
	workers    int
	seed       int64
}

func main() {
	// Parse command line flags
	opts := options{}
	flag.StringVar(&opts.sceneType, "scene", "default", "Scene name, built-in or file:<name> (see -list)")
	flag.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory of JSON scene files for file:<name> scenes")
	flag.StringVar(&opts.configPath, "config", "", "JSON scene file; takes precedence over -scene")
	flag.StringVar(&opts.output, "out", "", "Output file, format from extension (ppm, png, jpg, bmp, tiff)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultRenderConfig().Seed, "Random seed for sampling and random scenes")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sphere Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes(opts.scenesDir)
		fmt.Println()
		fmt.Println("Without -out, output is saved to output/<scene>/render_<timestamp>.png")
		return
	}

	if *list {
		printScenes(opts.scenesDir)
		return
	}

	// Ctrl+C cancels the render between pixels
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printScenes(scenesDir string) {
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s - %s\n", info.ID, info.Description)
		}
	}
}

// run renders the selected scene and writes it to disk
func run(ctx context.Context, opts options) error {
	fmt.Println("Starting Sphere Path Tracer...")

	// Reject an unknown output format before spending time rendering
	if opts.output != "" {
		if _, err := imaging.FormatFromPath(opts.output); err != nil {
			return err
		}
	}

	override := geometry.CameraConfig{Width: opts.width}

	var selectedScene *scene.Scene
	var err error
	if opts.configPath != "" {
		fmt.Printf("Loading scene from %s...\n", opts.configPath)
		selectedScene, err = scene.LoadFile(opts.configPath, override)
		opts.sceneType = sceneNameFromPath(opts.configPath)
	} else {
		fmt.Printf("Using %s scene...\n", opts.sceneType)
		selectedScene, err = createScene(opts.sceneType, opts.scenesDir, opts.seed, override)
	}
	if err != nil {
		return err
	}

	applySamplingOverrides(selectedScene, opts)

	raytracer := renderer.NewRaytracer(selectedScene, renderer.RenderConfig{
		TileSize:   renderer.DefaultTileSize,
		NumWorkers: opts.workers,
		Seed:       opts.seed,
	}, renderer.NewDefaultLogger())

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Image generated in %d ms (%.1f samples/pixel, %d workers)\n",
		stats.Elapsed.Milliseconds(), stats.AverageSamples, stats.NumWorkers)
	fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := opts.output
	if filename == "" {
		filename = defaultOutputPath(opts.sceneType, time.Now())
	}

	writeStart := time.Now()
	if err := imaging.Save(filename, img); err != nil {
		return err
	}

	fmt.Printf("Image written in %d ms\n", time.Since(writeStart).Milliseconds())
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene creates a built-in scene, or a scene file for file:<name>
func createScene(sceneType, scenesDir string, seed int64, override geometry.CameraConfig) (*scene.Scene, error) {
	return scene.CreateByID(sceneType, scenesDir, seed, override)
}

// applySamplingOverrides replaces scene sampling values set on the command line
func applySamplingOverrides(s *scene.Scene, opts options) {
	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneType string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	sceneType = strings.TrimPrefix(sceneType, scene.FileScenePrefix)
	return filepath.Join("output", sceneType, fmt.Sprintf("render_%s.png", timestamp))
}

func sceneNameFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
