package accel

import (
	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// BruteForce tests every instance for every query
type BruteForce struct {
	instances []*Instance
	counters  *Counters
}

// NewBruteForce creates a linear structure over a copy of instances
func NewBruteForce(instances []*Instance) *BruteForce {
	return &BruteForce{
		instances: append([]*Instance(nil), instances...),
		counters:  &Counters{},
	}
}

// Intersect returns the hit with the smallest t over all instances
func (b *BruteForce) Intersect(ray core.Ray) (core.Intersection, bool) {
	if !usableRay(ray) {
		return core.Intersection{}, false
	}

	var closest core.Intersection
	found := false
	for _, instance := range b.instances {
		hit, ok := b.counters.intersect(instance, ray)
		closest, found = core.Closest(closest, found, hit, ok)
	}
	return closest, found
}

// Visible returns false on the first occluder closer than to
func (b *BruteForce) Visible(from, to core.Vec3) bool {
	ray, distance, ok := shadowRay(from, to)
	if !ok {
		return true
	}

	for _, instance := range b.instances {
		if hit, ok := b.counters.intersect(instance, ray); ok && hit.T < distance {
			return false
		}
	}
	return true
}

// BoundingBox returns the union of all instance boxes after transform
func (b *BruteForce) BoundingBox(transform core.Transform) core.AABB {
	box := core.EmptyAABB()
	for _, instance := range b.instances {
		box = box.Union(instance.BoundingBox())
	}
	return box.Transformed(transform)
}

// Counters returns the intersection tests run so far
func (b *BruteForce) Counters() *Counters {
	return b.counters
}

// Len returns the number of instances
func (b *BruteForce) Len() int {
	return len(b.instances)
}
