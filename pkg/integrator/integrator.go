package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving at the ray origin along ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color
}
