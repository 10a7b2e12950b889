package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult is the first surface along a pixel's camera ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

// inspectPixel casts the ray through the center of pixel (x, y), row 0 at the top
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResult {
	width := sceneObj.SamplingConfig.Width
	height := sceneObj.SamplingConfig.Height
	j := height - 1 - y
	s := (float64(x) + 0.5) / float64(width)
	t := (float64(j) + 0.5) / float64(height)

	// Fixed seed so a lens camera reports the same surface on every request
	sampler := core.NewSeededSampler(0)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	hit, isHit := sceneObj.World.Hit(ray, integrator.MinHitDistance, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// ShapeList returns only the record; find the shape that produced it
	for _, shape := range sceneObj.World.Shapes {
		if shapeHit, ok := shape.Hit(ray, integrator.MinHitDistance, math.Inf(1)); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}
	return InspectResult{Hit: true, HitRecord: hit}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = [3]float64{m.Emission.X, m.Emission.Y, m.Emission.Z}
		properties["color"] = hexColor(m.Emission)
		return "diffuse_light", properties

	case nil:
		return "none", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	width := sceneObj.SamplingConfig.Width
	height := sceneObj.SamplingConfig.Height

	values := r.URL.Query()
	if values.Get("x") == "" || values.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "Missing pixel coordinates")
		return
	}
	pixelX, err := parseIntParam(values, "x", 0, 0, width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(values, "y", 0, 0, height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
