package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with four spheres on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.1, 0),  // Slightly above the ground line
		LookAt:      core.NewVec3(0, 0.1, -1), // Straight down -z
		Up:          core.NewVec3(0, 1, 0),    // Standard up direction
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0, // Viewport height 2 at focal length 1
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := New(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}, SkyBackground())
	if err != nil {
		return nil, err
	}

	// Create materials
	lambertianRed := material.NewLambertian(core.NewColor(0.8, 0.2, 0.2))
	lambertianGreen := material.NewLambertian(core.NewColor(0.0, 0.9, 0.2))
	lambertianBlue := material.NewLambertian(core.NewColor(0.1, 0.1, 0.8))
	metalGray := material.NewMetal(core.NewColor(0.6, 0.6, 0.6), 0.0)
	ground := material.NewLambertian(core.NewColor(0.2, 0.2, 0.2))

	s.AddSphere(core.NewVec3(0.75, 0, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-0.75, 0, -1), 0.5, lambertianGreen)
	s.AddSphere(core.NewVec3(0, 1.25, -2), 0.5, lambertianBlue)
	s.AddSphere(core.NewVec3(0, 0, -1.75), 0.5, metalGray)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)

	return s, nil
}
