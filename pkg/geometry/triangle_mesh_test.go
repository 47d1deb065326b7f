package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

// unitSquareMesh is a 1x1 square at z=0 made of two triangles
func unitSquareMesh(t *testing.T) *TriangleMesh {
	t.Helper()
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2, 0, 2, 3}, material.NewGray(1))
	if err != nil {
		t.Fatalf("NewTriangleMesh failed: %v", err)
	}
	return mesh
}

func TestTriangleMesh_Creation(t *testing.T) {
	mesh := unitSquareMesh(t)

	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	box := mesh.BoundingBox(core.Identity())
	if !vecClose(box.Min, core.NewVec3(0, 0, 0)) || !vecClose(box.Max, core.NewVec3(1, 1, 0)) {
		t.Errorf("Unexpected box [%v, %v]", box.Min, box.Max)
	}

	moved := mesh.BoundingBox(core.Identity().Translate(core.NewVec3(0, 0, 5)))
	if !vecClose(moved.Min, core.NewVec3(0, 0, 5)) {
		t.Errorf("Unexpected transformed box min %v", moved.Min)
	}
}

func TestTriangleMesh_Intersect(t *testing.T) {
	mesh := unitSquareMesh(t)

	tests := []struct {
		name    string
		origin  core.Vec3
		wantHit bool
	}{
		{"first triangle", core.NewVec3(0.75, 0.25, 2), true},
		{"second triangle", core.NewVec3(0.25, 0.75, 2), true},
		{"outside the square", core.NewVec3(1.5, 0.5, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			hit, isHit := mesh.Intersect(ray)
			if isHit != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, isHit)
			}
			if isHit && math.Abs(hit.T-2) > 1e-9 {
				t.Errorf("Expected t=2, got %f", hit.T)
			}
		})
	}
}

func TestTriangleMesh_ClosestTriangleWins(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(-1, -1, 2), core.NewVec3(1, -1, 2), core.NewVec3(0, 1, 2),
	}
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2, 3, 4, 5}, material.NewGray(1))
	if err != nil {
		t.Fatalf("NewTriangleMesh failed: %v", err)
	}

	hit, isHit := mesh.Intersect(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected the z=2 triangle at t=3, got t=%f", hit.T)
	}
}

func TestTriangleMesh_ErrorHandling(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name  string
		faces []int
	}{
		{"incomplete face", []int{0, 1}},
		{"index out of range", []int{0, 1, 3}},
		{"negative index", []int{0, -1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(vertices, tt.faces, material.NewGray(1))
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}
