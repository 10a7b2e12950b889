package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emission core.Color // Emitted light color/intensity
}

// NewDiffuseLight creates a new emissive material
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter implements the Material interface for emissive materials.
// Lights absorb every incoming ray.
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light for this material
func (e *DiffuseLight) Emit() core.Color {
	return e.Emission
}
