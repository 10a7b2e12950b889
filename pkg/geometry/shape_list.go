package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// ShapeList is the scene aggregate: an ordered collection of shapes searched linearly
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Clear removes every shape
func (l *ShapeList) Clear() {
	l.Shapes = nil
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest intersection among all shapes.
// Each successful hit narrows tMax, so on equal distances the earlier shape wins.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
