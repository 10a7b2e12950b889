package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Background returns the radiance arriving along a ray that escaped the scene
type Background func(ray core.Ray) core.Color

// GradientBackground blends from bottom (straight down) to top (straight up)
// using t = 0.5*(unit(dir).y + 1)
func GradientBackground(bottom, top core.Color) Background {
	return func(ray core.Ray) core.Color {
		unitDirection := ray.Direction.Normalize()
		t := 0.5 * (unitDirection.Y + 1.0)
		return bottom.Lerp(top, t)
	}
}

// SkyBackground is the white to sky-blue gradient
func SkyBackground() Background {
	return GradientBackground(core.NewColor(1.0, 1.0, 1.0), core.NewColor(0.5, 0.7, 1.0))
}

// SolidBackground returns the same color in every direction
func SolidBackground(color core.Color) Background {
	return func(core.Ray) core.Color {
		return color
	}
}

// BlackBackground is used by enclosed scenes lit only by emitters
func BlackBackground() Background {
	return SolidBackground(core.Color{})
}
