package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

func TestQuad_Intersect_BasicIntersection(t *testing.T) {
	// A 1x1 quad in the XZ plane at y=0 facing up
	quad := NewUnitSquare(false, material.NewGray(1))

	ray := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0))

	hit, isHit := quad.Intersect(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if !vecClose(hit.Point, core.NewVec3(0.5, 0, 0.5)) {
		t.Errorf("Expected hit point (0.5, 0, 0.5), got %v", hit.Point)
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected normal (0, 1, 0), got %v", hit.Normal)
	}
}

func TestQuad_Intersect_OutsideBounds(t *testing.T) {
	quad := NewUnitSquare(true, material.NewGray(1))

	tests := []struct {
		name      string
		rayOrigin core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, core.NewVec3(0, -1, 0))
			if _, isHit := quad.Intersect(ray); isHit {
				t.Error("Expected miss, but got hit")
			}
		})
	}
}

func TestQuad_Intersect_Sides(t *testing.T) {
	fromBelow := core.NewRay(core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0))

	if _, isHit := NewUnitSquare(false, material.NewGray(1)).Intersect(fromBelow); isHit {
		t.Error("Single sided quad should not be hit from behind")
	}

	hit, isHit := NewUnitSquare(true, material.NewGray(1)).Intersect(fromBelow)
	if !isHit {
		t.Fatal("Double sided quad should be hit from behind")
	}
	if !vecClose(hit.Normal, core.NewVec3(0, -1, 0)) {
		t.Errorf("Expected the normal to face the ray, got %v", hit.Normal)
	}

	parallel := core.NewRay(core.NewVec3(-1, 0, 0.5), core.NewVec3(1, 0, 0))
	if _, isHit := NewUnitSquare(true, material.NewGray(1)).Intersect(parallel); isHit {
		t.Error("Expected a parallel ray to miss")
	}
}

func TestQuad_BoundingBox(t *testing.T) {
	quad := NewUnitSquare(false, material.NewGray(1))
	transform := core.Identity().Scale(2, 1, 2).Translate(core.NewVec3(-1, 6, -1))

	box := quad.BoundingBox(transform)
	if !vecClose(box.Min, core.NewVec3(-1, 6, -1)) || !vecClose(box.Max, core.NewVec3(1, 6, 1)) {
		t.Errorf("Unexpected box [%v, %v]", box.Min, box.Max)
	}
	if !vecClose(quad.PointAt(1, 1), core.NewVec3(1, 0, 1)) {
		t.Errorf("Unexpected far corner %v", quad.PointAt(1, 1))
	}
}
