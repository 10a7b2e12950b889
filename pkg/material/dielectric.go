package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Color // Tint applied to every reflected or refracted ray
	RefractiveIndex float64    // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(albedo core.Color, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// NewClearDielectric creates an untinted dielectric
func NewClearDielectric(refractiveIndex float64) *Dielectric {
	return NewDielectric(core.NewColor(1, 1, 1), refractiveIndex)
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // air to glass
	} else {
		refractionRatio = d.RefractiveIndex // glass to air
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, d.RefractiveIndex) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Albedo,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// R0 is symmetric in the index ratio, so either ir or 1/ir gives the same value.
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
