package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// ErrInvalidMesh is returned for face lists that do not describe triangles
var ErrInvalidMesh = errors.New("geometry: invalid triangle mesh")

// TriangleMesh is a collection of triangles sharing one material. It is a
// single Object to the acceleration structure; the triangles are scanned
// linearly once the ray enters the cached mesh bounds.
type TriangleMesh struct {
	triangles []*Triangle
	bbox      core.AABB
	material  core.Material
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	mesh := &TriangleMesh{
		triangles: make([]*Triangle, 0, len(faces)/3),
		bbox:      core.EmptyAABB(),
		material:  material,
	}

	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i/3, idx, len(vertices))
			}
		}

		mesh.triangles = append(mesh.triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], material))
		mesh.bbox = mesh.bbox.Union(core.NewAABBFromPoints(vertices[i0], vertices[i1], vertices[i2]))
	}

	return mesh, nil
}

// Intersect returns the closest triangle hit
func (tm *TriangleMesh) Intersect(ray core.Ray) (core.Intersection, bool) {
	if _, _, _, ok := tm.bbox.Intersect(ray); !ok {
		return core.Intersection{}, false
	}

	var closest core.Intersection
	found := false
	for _, triangle := range tm.triangles {
		hit, ok := triangle.Intersect(ray)
		closest, found = core.Closest(closest, found, hit, ok)
	}
	return closest, found
}

// BoundingBox returns the box of all transformed vertices
func (tm *TriangleMesh) BoundingBox(transform core.Transform) core.AABB {
	if transform.IsIdentity() {
		return tm.bbox
	}

	box := core.EmptyAABB()
	for _, triangle := range tm.triangles {
		box = box.Union(triangle.BoundingBox(transform))
	}
	return box
}

// Material returns the mesh material
func (tm *TriangleMesh) Material() core.Material {
	return tm.material
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
