package scene

import (
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.ShapeList // Objects in the scene, searched linearly
	Background     Background          // Radiance for rays that escape the world
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int `json:"width"`           // Image width
	Height          int `json:"height"`          // Image height
	SamplesPerPixel int `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int `json:"maxDepth"`        // Maximum ray bounce depth
}

// Validate reports sampling values the renderer cannot work with
func (c SamplingConfig) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("image size %dx%d must not be negative", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return errors.Errorf("samples per pixel %d must be at least 1", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return errors.Errorf("max depth %d must not be negative", c.MaxDepth)
	}
	return nil
}

// New builds an empty scene from a camera configuration. Width and Height of
// the sampling config are taken from the camera config.
func New(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, background Background) (*Scene, error) {
	camera, err := geometry.NewCameraFromConfig(cameraConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create camera")
	}

	samplingConfig.Width = cameraConfig.Width
	samplingConfig.Height = cameraConfig.ImageHeight()

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          geometry.NewShapeList(),
		Background:     background,
		SamplingConfig: samplingConfig,
	}, nil
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// AddSphere adds a sphere with the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Color) {
	s.AddSphere(center, radius, material.NewDiffuseLight(emission))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// BackgroundColor evaluates the background for a ray that hit nothing.
// A scene without a background is black.
func (s *Scene) BackgroundColor(ray core.Ray) core.Color {
	if s.Background == nil {
		return core.Color{}
	}
	return s.Background(ray)
}
