package accel

import (
	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Instance places a shared object in the world. The object may be referenced
// by many instances; neither the object nor the instance changes after
// construction, so instances are safe to query from any number of goroutines.
type Instance struct {
	object    core.Object
	transform core.Transform
	box       core.AABB
	triangle  bool
}

// NewInstance creates an instance and caches its world-space bounding box
func NewInstance(object core.Object, transform core.Transform) *Instance {
	return &Instance{
		object:    object,
		transform: transform,
		box:       object.BoundingBox(transform),
		triangle:  isTriangle(object),
	}
}

// Object returns the shared object
func (i *Instance) Object() core.Object {
	return i.object
}

// Transform returns the object-to-world transform
func (i *Instance) Transform() core.Transform {
	return i.transform
}

// BoundingBox returns the cached world-space box
func (i *Instance) BoundingBox() core.AABB {
	return i.box
}

// Intersect maps the ray into object space, intersects the object and maps
// the hit back. T is the world-space distance from the ray origin.
func (i *Instance) Intersect(ray core.Ray) (core.Intersection, bool) {
	local := i.transform.Inverse().Ray(ray)

	hit, ok := i.object.Intersect(local)
	if !ok {
		return core.Intersection{}, false
	}

	point := i.transform.Point(hit.Point)
	return core.Intersection{
		T:        point.Subtract(ray.Origin).Length(),
		Point:    point,
		Normal:   i.transform.Normal(hit.Normal),
		Material: hit.Material,
	}, true
}

// usableRay reports whether a query ray can hit anything at all. Zero and
// non-finite directions never intersect in any structure.
func usableRay(ray core.Ray) bool {
	return ray.Origin.IsFinite() && ray.Direction.IsFinite() && ray.Direction.LengthSquared() > 0
}

// shadowRay builds the ray used for a visibility query together with the
// distance an occluder must be closer than. ok is false when the segment
// is degenerate, which counts as visible.
func shadowRay(from, to core.Vec3) (ray core.Ray, distance float64, ok bool) {
	delta := to.Subtract(from)
	distance = delta.Length()
	if !(distance > 0) || !from.IsFinite() || !to.IsFinite() {
		return core.Ray{}, 0, false
	}
	ray = core.NewRay(from, delta)
	return ray, distance, usableRay(ray)
}
