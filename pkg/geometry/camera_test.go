package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestCamera_PinholeCenterRay(t *testing.T) {
	camera, err := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		math.Pi/2, 2.0, 0.0, 1.0,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	if ray.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected pinhole origin, got %v", ray.Origin)
	}
	if ray.Direction.Normalize().Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected center ray along -z, got %v", ray.Direction)
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	// vfov 90° gives viewport height 2 at focus distance 1, width 4 with aspect 2
	camera, err := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		math.Pi/2, 2.0, 0.0, 1.0,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, core.NewSeededSampler(1))
			if ray.Direction.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_FocusDistanceScalesViewport(t *testing.T) {
	camera, err := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		math.Pi/2, 1.0, 0.0, 3.0,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(1, 1, core.NewSeededSampler(1))
	expected := core.NewVec3(3, 3, -3)
	if ray.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}

func TestCamera_DepthOfFieldConvergesOnFocusPlane(t *testing.T) {
	focus := 5.0
	camera, err := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		math.Pi/3, 1.5, 2.0, focus,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sampler := core.NewSeededSampler(42)
	var target core.Vec3
	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.3, 0.7, sampler)

		// Lens offsets stay within the aperture disk in the u/v plane
		if ray.Origin.Z != 0 || ray.Origin.Length() >= 1.0 {
			t.Fatalf("Lens origin %v outside aperture radius 1", ray.Origin)
		}
		if ray.Origin.Length() > 0 {
			moved = true
		}

		// Every ray passes through the same point on the focus plane
		point := ray.At(1.0)
		if i == 0 {
			target = point
		} else if point.Subtract(target).Length() > 1e-9 {
			t.Fatalf("Ray %d reaches %v, expected %v", i, point, target)
		}
	}

	if !moved {
		t.Error("Expected lens sampling to offset ray origins")
	}
	if math.Abs(target.Z+focus) > 1e-9 {
		t.Errorf("Focus point should lie on z=-%f, got %v", focus, target)
	}
}

func TestCamera_LookFromOrientation(t *testing.T) {
	from := core.NewVec3(3, 3, 2)
	at := core.NewVec3(0, 0, -1)
	camera, err := NewCamera(from, at, core.NewVec3(0, 1, 0), math.Pi/9, 16.0/9.0, 0, from.Subtract(at).Length())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	expected := at.Subtract(from).Normalize()
	if ray.Direction.Normalize().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected center ray %v, got %v", expected, ray.Direction.Normalize())
	}
	if camera.Forward().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward %v, got %v", expected, camera.Forward())
	}
}

func TestNewCamera_DegenerateGeometry(t *testing.T) {
	origin := core.NewVec3(0, 0, 0)
	forward := core.NewVec3(0, 0, -1)
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name   string
		from   core.Vec3
		at     core.Vec3
		up     core.Vec3
		vfov   float64
		aspect float64
		focus  float64
	}{
		{"coincident look-from and look-at", origin, origin, up, 1, 1, 1},
		{"up parallel to view", origin, forward, core.NewVec3(0, 0, 1), 1, 1, 1},
		{"zero up vector", origin, forward, core.NewVec3(0, 0, 0), 1, 1, 1},
		{"zero field of view", origin, forward, up, 0, 1, 1},
		{"field of view of pi", origin, forward, up, math.Pi, 1, 1},
		{"zero aspect ratio", origin, forward, up, 1, 0, 1},
		{"zero focus distance", origin, forward, up, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(tt.from, tt.at, tt.up, tt.vfov, tt.aspect, 0, tt.focus)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("Expected ErrDegenerateGeometry, got %v", err)
			}
			if camera != nil {
				t.Error("Expected nil camera on error")
			}
		})
	}
}

func TestNewCameraFromConfig(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 2),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 2.0,
		VFov:        90,
	}

	camera, err := NewCameraFromConfig(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Auto focus distance is |center - lookAt| = 2, so the upper right
	// corner sits at (4, 2, 0)
	ray := camera.GetRay(1, 1, core.NewSeededSampler(1))
	expected := core.NewVec3(4, 2, -2)
	if ray.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}

	if h := config.ImageHeight(); h != 200 {
		t.Errorf("Expected image height 200, got %d", h)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Center:      core.NewVec3(0, 0, 2),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40,
		Aperture:    0.1,
	}

	merged := MergeCameraConfig(base, CameraConfig{Width: 800, VFov: 20})

	if merged.Width != 800 || merged.VFov != 20 {
		t.Errorf("Expected overrides applied, got width=%d vfov=%f", merged.Width, merged.VFov)
	}
	if merged.Center != base.Center || merged.Aperture != base.Aperture || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Expected unset fields to keep base values, got %+v", merged)
	}
}
