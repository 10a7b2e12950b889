package scene

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// FileConfig is the JSON description of a scene
type FileConfig struct {
	Name        string                    `json:"name"` // Display name, defaults to the file name
	Description string                    `json:"description"`
	Group       string                    `json:"group"` // Scene list grouping
	Camera      geometry.CameraConfig     `json:"camera"`
	Sampling    SamplingConfig            `json:"sampling"`
	Background  BackgroundConfig          `json:"background"`
	Materials   map[string]MaterialConfig `json:"materials"`
	Spheres     []SphereConfig            `json:"spheres"`
}

// BackgroundConfig selects a background: "sky" (default), "gradient", "solid" or "black"
type BackgroundConfig struct {
	Type   string    `json:"type"`
	Bottom core.Vec3 `json:"bottom"` // gradient
	Top    core.Vec3 `json:"top"`    // gradient
	Color  core.Vec3 `json:"color"`  // solid
}

// MaterialConfig describes one named material.
// Type is "lambertian", "metal", "dielectric" or "light".
type MaterialConfig struct {
	Type            string     `json:"type"`
	Albedo          *core.Vec3 `json:"albedo"`          // Defaults to white
	Fuzz            float64    `json:"fuzz"`            // metal
	RefractiveIndex float64    `json:"refractiveIndex"` // dielectric
	Emission        core.Vec3  `json:"emission"`        // light
}

// SphereConfig places a sphere using a named material
type SphereConfig struct {
	Center   core.Vec3 `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// LoadFile reads a JSON scene file. Non-zero fields of cameraOverride replace
// the camera read from the file.
func LoadFile(path string, cameraOverride geometry.CameraConfig) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open scene file")
	}
	defer file.Close()

	s, err := Load(file, cameraOverride)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load scene %s", path)
	}
	return s, nil
}

// Load decodes a JSON scene description from r and builds the scene
func Load(r io.Reader, cameraOverride geometry.CameraConfig) (*Scene, error) {
	var config FileConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, errors.Wrap(err, "invalid scene JSON")
	}
	return config.Build(cameraOverride)
}

// Build creates the scene described by the config
func (c FileConfig) Build(cameraOverride geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.MergeCameraConfig(c.Camera, cameraOverride)
	if cameraConfig.Up == (core.Vec3{}) {
		cameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if cameraConfig.Width <= 0 {
		return nil, errors.Errorf("camera width %d must be positive", cameraConfig.Width)
	}

	sampling := c.Sampling
	if sampling.SamplesPerPixel == 0 {
		sampling.SamplesPerPixel = 100
	}
	if sampling.MaxDepth == 0 {
		sampling.MaxDepth = 50
	}
	if err := sampling.Validate(); err != nil {
		return nil, err
	}

	background, err := c.Background.build()
	if err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(c.Materials))
	for name, mc := range c.Materials {
		mat, err := mc.build()
		if err != nil {
			return nil, errors.Wrapf(err, "material %q", name)
		}
		materials[name] = mat
	}

	s, err := New(cameraConfig, sampling, background)
	if err != nil {
		return nil, err
	}

	for i, sc := range c.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			names := lo.Keys(materials)
			sort.Strings(names)
			return nil, errors.Errorf("sphere %d references unknown material %q (defined: %v)", i, sc.Material, names)
		}
		s.AddSphere(sc.Center, sc.Radius, mat)
	}

	return s, nil
}

func (b BackgroundConfig) build() (Background, error) {
	switch b.Type {
	case "", "sky":
		return SkyBackground(), nil
	case "gradient":
		return GradientBackground(b.Bottom, b.Top), nil
	case "solid":
		return SolidBackground(b.Color), nil
	case "black":
		return BlackBackground(), nil
	default:
		return nil, errors.Errorf("unknown background type %q", b.Type)
	}
}

func (m MaterialConfig) build() (material.Material, error) {
	albedo := core.NewColor(1, 1, 1)
	if m.Albedo != nil {
		albedo = *m.Albedo
	}

	switch m.Type {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if m.RefractiveIndex <= 0 {
			return nil, errors.Errorf("refractive index %f must be positive", m.RefractiveIndex)
		}
		return material.NewDielectric(albedo, m.RefractiveIndex), nil
	case "light":
		return material.NewDiffuseLight(m.Emission), nil
	default:
		return nil, errors.Errorf("unknown material type %q", m.Type)
	}
}
