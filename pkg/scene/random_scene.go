package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// randomSceneLayout controls how small spheres are scattered on the ground
type randomSceneLayout struct {
	gridMin, gridMax int
	// position returns the sphere center for grid cell (a, b)
	position func(a, b int, random *rand.Rand) core.Vec3
}

// NewRandomScene creates the classic cover scene: a field of small random
// spheres around three large ones. The layout is fully determined by seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := randomSceneCamera(1200, cameraOverrides)

	s, err := New(cameraConfig, SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}, SkyBackground())
	if err != nil {
		return nil, err
	}

	addRandomSpheres(s, rand.New(rand.NewSource(seed)), randomSceneLayout{
		gridMin: -11,
		gridMax: 11,
		position: func(a, b int, random *rand.Rand) core.Vec3 {
			return core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
		},
	})

	return s, nil
}

// NewRandomLightsScene creates a sparser random field under a black sky,
// lit only by a white emissive sphere
func NewRandomLightsScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := randomSceneCamera(400, cameraOverrides)

	s, err := New(cameraConfig, SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        10,
	}, BlackBackground())
	if err != nil {
		return nil, err
	}

	addRandomSpheres(s, rand.New(rand.NewSource(seed)), randomSceneLayout{
		gridMin: -3,
		gridMax: 3,
		position: func(a, b int, random *rand.Rand) core.Vec3 {
			return core.NewVec3(float64(a)*5.0*random.Float64(), 0.2, float64(b)*5.0*random.Float64())
		},
	})

	s.AddSphereLight(core.NewVec3(-5, 1, 2), 1.0, core.NewColor(1, 1, 1))

	return s, nil
}

func randomSceneCamera(width int, cameraOverrides []geometry.CameraConfig) geometry.CameraConfig {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         width,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	if len(cameraOverrides) > 0 {
		return geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}
	return defaultCameraConfig
}

// addRandomSpheres fills the ground and grid, then adds the three feature spheres
func addRandomSpheres(s *Scene, random *rand.Rand, layout randomSceneLayout) {
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := layout.gridMin; a < layout.gridMax; a++ {
		for b := layout.gridMin; b < layout.gridMax; b++ {
			chooseMat := random.Float64()
			center := layout.position(a, b, random)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := randomColor(random).MultiplyVec(randomColor(random))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// metal
				albedo := randomColor(random)
				fuzz := 0.5 * random.Float64()
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				// glass, index drawn from (0, 3] so it is never zero
				albedo := randomColor(random)
				sphereMaterial = material.NewDielectric(albedo, 3.0*(1.0-random.Float64()))
			}
			s.AddSphere(center, 0.2, sphereMaterial)
		}
	}

	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewClearDielectric(1.5))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))
}

func randomColor(random *rand.Rand) core.Color {
	return core.NewColor(random.Float64(), random.Float64(), random.Float64())
}
