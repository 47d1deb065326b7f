package geometry

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// planeExtent bounds the otherwise infinite plane so it can live in a BVH
const planeExtent = 1e6

// planeThickness avoids a zero-width box along the normal axis
const planeThickness = 1e-3

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point       core.Vec3 // A point on the plane
	Normal      core.Vec3 // Unit normal of the front face
	DoubleSided bool      // Whether rays from behind hit as well
	material    core.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, doubleSided bool, material core.Material) *Plane {
	return &Plane{
		Point:       point,
		Normal:      normal.Normalize(),
		DoubleSided: doubleSided,
		material:    material,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (core.Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays, NaN and (single sided) rays from behind never hit
	if !(math.Abs(denominator) > 1e-12) {
		return core.Intersection{}, false
	}
	if !p.DoubleSided && denominator > 0 {
		return core.Intersection{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !(t > 0) {
		return core.Intersection{}, false
	}

	// Hits must lie inside the box the acceleration structures index
	point := ray.At(t)
	if !p.bounds().Contains(point) {
		return core.Intersection{}, false
	}

	normal := p.Normal
	if denominator > 0 {
		normal = normal.Negate()
	}

	return core.Intersection{
		T:        t,
		Point:    point,
		Normal:   normal,
		Material: p.material,
	}, true
}

// BoundingBox returns a large box around the plane. Axis-aligned planes get a
// thin slab so the BVH can still prune them along the normal.
func (p *Plane) BoundingBox(transform core.Transform) core.AABB {
	return p.bounds().Transformed(transform)
}

// bounds is the object-space box of the plane
func (p *Plane) bounds() core.AABB {
	min := core.NewVec3(-planeExtent, -planeExtent, -planeExtent)
	max := core.NewVec3(planeExtent, planeExtent, planeExtent)

	switch {
	case math.Abs(p.Normal.X) > 0.999:
		min.X, max.X = p.Point.X-planeThickness, p.Point.X+planeThickness
	case math.Abs(p.Normal.Y) > 0.999:
		min.Y, max.Y = p.Point.Y-planeThickness, p.Point.Y+planeThickness
	case math.Abs(p.Normal.Z) > 0.999:
		min.Z, max.Z = p.Point.Z-planeThickness, p.Point.Z+planeThickness
	}

	return core.NewAABB(min, max)
}

// Material returns the plane material
func (p *Plane) Material() core.Material {
	return p.material
}
