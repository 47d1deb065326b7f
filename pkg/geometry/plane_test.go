package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

func TestPlane_Intersect(t *testing.T) {
	mat := material.NewGray(1)
	floor := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), false, mat)
	doubleSided := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), true, mat)

	tests := []struct {
		name       string
		plane      *Plane
		ray        core.Ray
		wantHit    bool
		wantT      float64
		wantNormal core.Vec3
	}{
		{
			name:       "ray straight down",
			plane:      floor,
			ray:        core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)),
			wantHit:    true,
			wantT:      2,
			wantNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:    "parallel ray",
			plane:   floor,
			ray:     core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "plane behind the ray",
			plane:   floor,
			ray:     core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)),
			wantHit: false,
		},
		{
			name:    "single sided plane seen from below",
			plane:   floor,
			ray:     core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)),
			wantHit: false,
		},
		{
			name:       "double sided plane seen from below",
			plane:      doubleSided,
			ray:        core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)),
			wantHit:    true,
			wantT:      2,
			wantNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:    "grazing hit outside the bounding box",
			plane:   floor,
			ray:     core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, -1e-7, 0)),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.plane.Intersect(tt.ray)
			if isHit != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.wantT, hit.T)
			}
			if !vecClose(hit.Normal, tt.wantNormal) {
				t.Errorf("Expected normal %v, got %v", tt.wantNormal, hit.Normal)
			}
		})
	}
}

func TestPlane_BoundingBox(t *testing.T) {
	floor := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), false, material.NewGray(1))

	box := floor.BoundingBox(core.Identity())
	if box.Size().Y > 0.01 {
		t.Errorf("Expected a thin box along Y, got size %v", box.Size())
	}
	if !box.Contains(core.NewVec3(1000, -1, -1000)) {
		t.Error("Expected the box to contain far away points on the plane")
	}

	moved := floor.BoundingBox(core.Identity().Translate(core.NewVec3(0, 5, 0)))
	if !moved.Contains(core.NewVec3(0, 4, 0)) || moved.Contains(core.NewVec3(0, -1, 0)) {
		t.Errorf("Unexpected translated box %v", moved)
	}
}

func TestPlane_HitsStayInsideBoundingBox(t *testing.T) {
	floor := NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), false, material.NewGray(1))
	box := floor.BoundingBox(core.Identity())

	for _, slope := range []float64{1, 1e-3, 1e-5, 1e-6, 1e-7} {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, -slope, 0.5))
		hit, ok := floor.Intersect(ray)
		if ok && !box.Contains(hit.Point) {
			t.Errorf("slope %g: hit %v lies outside the box %v", slope, hit.Point, box)
		}
	}
}
