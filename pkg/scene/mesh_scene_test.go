package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/loaders"
)

func tetrahedron() *loaders.MeshData {
	return &loaders.MeshData{
		Vertices: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
			core.NewVec3(0, 0, 1),
		},
		Faces: []int{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
	}
}

func TestNewMeshScene(t *testing.T) {
	bvhScene, err := NewMeshScene(testConfig(accel.KindBVH), tetrahedron())
	if err != nil {
		t.Fatalf("NewMeshScene failed: %v", err)
	}
	bruteScene, err := NewMeshScene(testConfig(accel.KindBruteForce), tetrahedron())
	if err != nil {
		t.Fatalf("NewMeshScene failed: %v", err)
	}

	// Four triangles plus the floor
	if n := bvhScene.InstanceCount(); n != 5 {
		t.Errorf("Expected 5 instances, got %d", n)
	}

	// Scaled by 3 and centred at z = 3, the z = 0 face ends up at z = 1.5
	hit, ok := bvhScene.Intersect(bvhScene.Camera().Ray(20, 15))
	if !ok {
		t.Fatal("Expected the centre ray to hit the mesh")
	}
	if math.Abs(hit.Point.Z-1.5) > 1e-9 {
		t.Errorf("Expected hit on the front face at z=1.5, got %v", hit.Point)
	}

	for y := 0; y < 30; y += 2 {
		for x := 0; x < 40; x += 2 {
			a := bvhScene.PixelColor(x, y, nil)
			b := bruteScene.PixelColor(x, y, nil)
			if a.Subtract(b).Length() > 1e-9 {
				t.Fatalf("pixel (%d,%d): BVH %v, brute force %v", x, y, a, b)
			}
		}
	}
}

func TestNewMeshScene_Empty(t *testing.T) {
	if _, err := NewMeshScene(testConfig(accel.KindBVH), &loaders.MeshData{}); err == nil {
		t.Error("Expected an error for a mesh without triangles")
	}
}

func TestLoadMeshScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.obj")
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 3 2\nf 1 2 4\nf 1 4 3\nf 2 3 4\n"
	if err := os.WriteFile(path, []byte(obj), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s, err := LoadMeshScene(path, testConfig(accel.KindBVH))
	if err != nil {
		t.Fatalf("LoadMeshScene failed: %v", err)
	}
	if n := s.InstanceCount(); n != 5 {
		t.Errorf("Expected 5 instances, got %d", n)
	}

	if _, err := LoadMeshScene(filepath.Join(t.TempDir(), "missing.obj"), testConfig(accel.KindBVH)); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
