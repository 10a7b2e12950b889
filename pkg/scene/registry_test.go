package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestCreate_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name           string
		expectedWidth  int
		expectedHeight int
		expectedSPP    int
		expectedDepth  int
	}{
		{"default", 800, 450, 100, 50},
		{"defocus", 400, 225, 200, 50},
		{"sphere-grid", 800, 450, 100, 40},
		{"random", 1200, 675, 200, 50},
		{"random-lights", 400, 225, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name, 1, geometry.CameraConfig{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if s.Camera == nil {
				t.Fatal("Scene camera is nil")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene has no shapes")
			}

			cfg := s.SamplingConfig
			if cfg.Width != tt.expectedWidth || cfg.Height != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, cfg.Width, cfg.Height)
			}
			if cfg.SamplesPerPixel != tt.expectedSPP || cfg.MaxDepth != tt.expectedDepth {
				t.Errorf("Expected spp=%d depth=%d, got spp=%d depth=%d",
					tt.expectedSPP, tt.expectedDepth, cfg.SamplesPerPixel, cfg.MaxDepth)
			}
		})
	}
}

func TestCreate_CameraOverride(t *testing.T) {
	s, err := Create("default", 0, geometry.CameraConfig{Width: 160})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.SamplingConfig.Width != 160 || s.SamplingConfig.Height != 90 {
		t.Errorf("Expected 160x90, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.CameraConfig.VFov != 90 {
		t.Errorf("Expected default vfov to survive override, got %f", s.CameraConfig.VFov)
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	s, err := Create("teapot", 0, geometry.CameraConfig{})
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if s != nil {
		t.Error("Expected nil scene on error")
	}
}

func TestCreate_DegenerateCameraOverride(t *testing.T) {
	// Looking along the up vector leaves no horizontal axis
	override := geometry.CameraConfig{
		Center: core.NewVec3(0, 5, 0),
		LookAt: core.NewVec3(0, -5, 0),
	}
	_, err := Create("defocus", 0, override)
	if !errors.Is(err, geometry.ErrDegenerateGeometry) {
		t.Errorf("Expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestListScenes(t *testing.T) {
	infos := ListScenes()
	names := SceneNames()

	if len(infos) != 5 || len(names) != 5 {
		t.Fatalf("Expected 5 scenes, got %d infos and %d names", len(infos), len(names))
	}
	for i, info := range infos {
		if info.ID != names[i] {
			t.Errorf("Scene %d: info ID %q does not match name %q", i, info.ID, names[i])
		}
		if info.DisplayName == "" {
			t.Errorf("Scene %q has no display name", info.ID)
		}
	}
}

func TestSphereGridScene(t *testing.T) {
	s, err := NewSphereGridScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// light + ground + grid
	expected := 2 + sphereGridSize*sphereGridSize
	if s.GetPrimitiveCount() != expected {
		t.Errorf("Expected %d spheres, got %d", expected, s.GetPrimitiveCount())
	}

	metals := 0
	for _, shape := range s.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if m, ok := sphere.Material.(*material.Metal); ok {
			metals++
			for _, c := range []float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z} {
				if c < 0 || c > 1 {
					t.Fatalf("Albedo %v outside [0,1]", m.Albedo)
				}
			}
		}
	}
	if metals != sphereGridSize*sphereGridSize {
		t.Errorf("Expected %d metal spheres, got %d", sphereGridSize*sphereGridSize, metals)
	}
}

func TestOklchToRGB_Gray(t *testing.T) {
	// Zero chroma is achromatic: lightness 1 is white
	c := oklchToRGB(1, 0, 123)
	if math.Abs(c.X-1) > 1e-6 || math.Abs(c.Y-1) > 1e-6 || math.Abs(c.Z-1) > 1e-6 {
		t.Errorf("Expected white, got %v", c)
	}
}

func TestRandomScene_DeterministicPerSeed(t *testing.T) {
	a, err := NewRandomScene(7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := NewRandomScene(7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	c, err := NewRandomScene(8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.World.Len() != b.World.Len() {
		t.Fatalf("Same seed produced %d and %d shapes", a.World.Len(), b.World.Len())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Shape %d differs between runs with the same seed", i)
		}
	}

	differs := a.World.Len() != c.World.Len()
	for i := 1; !differs && i < a.World.Len(); i++ {
		if a.World.Shapes[i].(*geometry.Sphere).Center != c.World.Shapes[i].(*geometry.Sphere).Center {
			differs = true
		}
	}
	if !differs {
		t.Error("Different seeds produced identical layouts")
	}
}

func TestRandomScene_SmallSpheresAvoidClearing(t *testing.T) {
	s, err := NewRandomScene(42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, shape := range s.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		dx := sphere.Center.X - 4
		dz := sphere.Center.Z
		if dx*dx+dz*dz <= 0.81 {
			t.Errorf("Sphere %d at %v is inside the clearing", i, sphere.Center)
		}
		if d, ok := sphere.Material.(*material.Dielectric); ok && d.RefractiveIndex <= 0 {
			t.Errorf("Sphere %d has non-positive refractive index %f", i, d.RefractiveIndex)
		}
	}
}

func TestRandomLightsScene_HasEmitterAndBlackSky(t *testing.T) {
	s, err := NewRandomLightsScene(3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	last := s.World.Shapes[s.World.Len()-1].(*geometry.Sphere)
	if _, ok := last.Material.(*material.DiffuseLight); !ok {
		t.Errorf("Expected last shape to be a light, got %T", last.Material)
	}

	sky := s.BackgroundColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	if sky.Length() != 0 {
		t.Errorf("Expected black background, got %v", sky)
	}
}
