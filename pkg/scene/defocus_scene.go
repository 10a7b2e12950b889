package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefocusScene creates three spheres (diffuse, glass, rough metal) viewed
// from above through a wide aperture focused on the center sphere
func NewDefocusScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      2.0, // Strong depth of field blur
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := New(cameraConfig, SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}, SkyBackground())
	if err != nil {
		return nil, err
	}

	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(core.NewColor(0.9, 0.9, 0.9), 1.5)
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, materialGround)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, materialRight)

	return s, nil
}
