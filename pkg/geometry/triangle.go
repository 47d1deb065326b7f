package geometry

import (
	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	material   core.Material
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		material: material,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (core.Intersection, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle (or the input is NaN)
	if !(a < -epsilon || a > epsilon) {
		return core.Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return core.Intersection{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return core.Intersection{}, false
	}

	tHit := f * edge2.Dot(q)
	if !(tHit > 0) {
		return core.Intersection{}, false
	}

	// Face the normal towards the incoming ray
	normal := t.normal
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	return core.Intersection{
		T:        tHit,
		Point:    ray.At(tHit),
		Normal:   normal,
		Material: t.material,
	}, true
}

// BoundingBox returns the box of the transformed vertices
func (t *Triangle) BoundingBox(transform core.Transform) core.AABB {
	return core.NewAABBFromPoints(transform.Point(t.V0), transform.Point(t.V1), transform.Point(t.V2))
}

// Material returns the triangle material
func (t *Triangle) Material() core.Material {
	return t.material
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
