package geometry

import (
	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Box is a solid axis-aligned box in object space
type Box struct {
	Bounds   core.AABB
	material core.Material
}

// NewBox creates a box from its bounds
func NewBox(bounds core.AABB, material core.Material) *Box {
	return &Box{Bounds: bounds, material: material}
}

// NewBoxFromOrigin creates the box spanned by the origin and a corner point
func NewBoxFromOrigin(corner core.Vec3, material core.Material) *Box {
	return NewBox(core.NewAABBFromOrigin(corner), material)
}

// Intersect returns the entry face hit, or the exit face when the ray starts inside
func (b *Box) Intersect(ray core.Ray) (core.Intersection, bool) {
	tNear, tFar, nearAxis, farAxis, ok := b.Bounds.Slab(ray)
	if !ok {
		return core.Intersection{}, false
	}

	t, axis, entering := tNear, nearAxis, true
	if !(t > 0) {
		t, axis, entering = tFar, farAxis, false
	}
	if !(t > 0) || axis < 0 {
		return core.Intersection{}, false
	}

	return core.Intersection{
		T:        t,
		Point:    ray.At(t),
		Normal:   core.FaceNormal(axis, ray.Direction, entering),
		Material: b.material,
	}, true
}

// BoundingBox returns the transformed bounds
func (b *Box) BoundingBox(transform core.Transform) core.AABB {
	return b.Bounds.Transformed(transform)
}

// Material returns the box material
func (b *Box) Material() core.Material {
	return b.material
}
