package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ErrDegenerateGeometry is returned when camera parameters cannot span a viewport
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Center        core.Vec3 `json:"center"`        // Camera position (look-from)
	LookAt        core.Vec3 `json:"lookAt"`        // Point the camera is looking at
	Up            core.Vec3 `json:"up"`            // Up direction (usually (0,1,0))
	Width         int       `json:"width"`         // Image width in pixels
	AspectRatio   float64   `json:"aspectRatio"`   // Width / height ratio
	VFov          float64   `json:"vfov"`          // Vertical field of view in degrees
	Aperture      float64   `json:"aperture"`      // Lens diameter, 0 = pinhole
	FocusDistance float64   `json:"focusDistance"` // Distance to focus plane, 0 = |center - lookAt|
}

// ImageHeight returns the image height implied by Width and AspectRatio (at least 1)
func (c CameraConfig) ImageHeight() int {
	if c.AspectRatio <= 0 {
		return 0
	}
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays through a thin lens
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera builds a camera looking from lookFrom toward lookAt.
// vfov is the vertical field of view in radians; aperture is the lens diameter.
func NewCamera(lookFrom, lookAt, up core.Vec3, vfov, aspectRatio, aperture, focusDistance float64) (*Camera, error) {
	if vfov <= 0 || vfov >= math.Pi {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "vertical field of view %f outside (0, π)", vfov)
	}
	if aspectRatio <= 0 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "aspect ratio %f must be positive", aspectRatio)
	}
	if focusDistance <= 0 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "focus distance %f must be positive", focusDistance)
	}

	view := lookFrom.Subtract(lookAt)
	if view.NearZero() {
		return nil, errors.Wrap(ErrDegenerateGeometry, "look-from and look-at coincide")
	}
	w := view.Normalize()

	side := up.Cross(w)
	if side.NearZero() {
		return nil, errors.Wrap(ErrDegenerateGeometry, "up vector is parallel to the view direction")
	}
	u := side.Normalize()
	v := w.Cross(u)

	viewportHeight := 2.0 * math.Tan(vfov/2)
	viewportWidth := aspectRatio * viewportHeight

	origin := lookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      aperture / 2,
	}, nil
}

// NewCameraFromConfig converts a CameraConfig (degrees, auto focus) into a Camera
func NewCameraFromConfig(config CameraConfig) (*Camera, error) {
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}
	vfov := config.VFov * math.Pi / 180.0
	return NewCamera(config.Center, config.LookAt, config.Up, vfov, config.AspectRatio, config.Aperture, focusDistance)
}

// GetRay generates a ray for normalized screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner of the viewport.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.SampleInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Origin returns the lens center
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
