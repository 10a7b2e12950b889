package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
