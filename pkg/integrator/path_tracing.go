package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they left
const MinHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces ray with the configured MaxDepth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return pt.RayColorDepth(ray, scene, sampler, pt.config.MaxDepth)
}

// RayColorDepth traces ray through at most depth scatter events.
//
// Each hit adds its emission weighted by the product of attenuations so far,
// then continues along the scattered ray. A path that runs out of depth
// contributes nothing further; an absorbed path stops after its emission; an
// escaped path adds the background. This is the iterative form of
// emitted + attenuation * RayColor(scattered, depth-1).
func (pt *PathTracingIntegrator) RayColorDepth(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Color {
	radiance := core.Color{}
	throughput := core.NewColor(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := scene.World.Hit(ray, MinHitDistance, math.Inf(1))
		if !isHit {
			return radiance.Add(throughput.MultiplyVec(scene.BackgroundColor(ray)))
		}

		// Shapes without a material absorb everything
		if hit.Material == nil {
			return radiance
		}

		radiance = radiance.Add(throughput.MultiplyVec(material.Emitted(hit.Material)))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Out of bounces: the rest of the path is treated as absorbed
	return radiance
}
