package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when the
	// incoming ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit() core.Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// Emitted returns the light emitted by m, which is black for non-emitters
func Emitted(m Material) core.Color {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emit()
	}
	return core.Color{}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
