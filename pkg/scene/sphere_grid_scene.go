package scene

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 10

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS (cube roots)
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS -> linear RGB
	return core.NewColor(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored metal spheres lit by a large
// emissive sphere. Hue varies along x and chroma along z.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.02, // Slight depth of field
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := New(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        40,
	}, SkyBackground())
	if err != nil {
		return nil, err
	}

	// Sun-like light high to the side
	s.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewColor(12.0, 11.5, 10.0))

	// Ground sphere whose top touches y=0 under the grid center
	s.AddSphere(core.NewVec3(4.5, -1000, 4.5), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	const targetArea = 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	radius := math.Min(0.35, spacing*0.35)

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i) * spacing
			z := float64(j) * spacing

			hue := float64(i) / float64(sphereGridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(sphereGridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.05*float64((i+j)%3)
			s.AddSphere(core.NewVec3(x, radius, z), radius, material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz))
		}
	}

	return s, nil
}
