package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestShapeList_NearestHit(t *testing.T) {
	near := material.NewLambertian(core.NewColor(1, 0, 0))
	far := material.NewLambertian(core.NewColor(0, 0, 1))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []Shape
	}{
		{
			name: "near sphere first",
			shapes: []Shape{
				NewSphere(core.NewVec3(0, 0, -1), 0.5, near),
				NewSphere(core.NewVec3(0, 0, -2), 1.0, far),
			},
		},
		{
			name: "far sphere first",
			shapes: []Shape{
				NewSphere(core.NewVec3(0, 0, -2), 1.0, far),
				NewSphere(core.NewVec3(0, 0, -1), 0.5, near),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewShapeList(tt.shapes...)
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-0.5) > 1e-9 {
				t.Errorf("Expected nearest t=0.5, got %f", hit.T)
			}
			if hit.Material != material.Material(near) {
				t.Error("Expected the nearer sphere's material")
			}
		})
	}
}

func TestShapeList_EqualDistanceKeepsFirst(t *testing.T) {
	first := material.NewLambertian(core.NewColor(1, 0, 0))
	second := material.NewLambertian(core.NewColor(0, 1, 0))

	list := NewShapeList(
		NewSphere(core.NewVec3(0, 0, -1), 0.5, first),
		NewSphere(core.NewVec3(0, 0, -1), 0.5, second),
	)

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != material.Material(first) {
		t.Error("Expected the earlier shape to win an exact tie")
	}
}

func TestShapeList_MissAndClear(t *testing.T) {
	list := NewShapeList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}

	list.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5, nil))
	list.Add(NewSphere(core.NewVec3(0, 5, -1), 0.5, nil))
	if list.Len() != 2 {
		t.Fatalf("Expected 2 shapes, got %d", list.Len())
	}
	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); !isHit {
		t.Error("Expected hit after Add")
	}

	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Expected empty list after Clear, got %d", list.Len())
	}
	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss after Clear")
	}
}

func TestShapeList_RespectsTMax(t *testing.T) {
	list := NewShapeList(NewSphere(core.NewVec3(0, 0, -10), 1, nil))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 5); isHit {
		t.Error("Expected miss beyond tMax")
	}
}
