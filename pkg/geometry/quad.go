package geometry

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner      core.Vec3 // One corner of the quad
	U           core.Vec3 // First edge vector
	V           core.Vec3 // Second edge vector
	Normal      core.Vec3 // Front face normal (U × V normalized)
	DoubleSided bool      // Whether rays from behind hit as well
	material    core.Material
	d           float64   // Plane equation constant: normal · x = d
	w           core.Vec3 // Cached vector for the edge coordinates of a hit
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, doubleSided bool, material core.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:      corner,
		U:           u,
		V:           v,
		Normal:      normal,
		DoubleSided: doubleSided,
		material:    material,
		d:           normal.Dot(corner),
		w:           cross.Multiply(1.0 / cross.Dot(cross)),
	}
}

// NewUnitSquare creates the square [0,1]×[0,1] in the XZ plane facing +Y
func NewUnitSquare(doubleSided bool, material core.Material) *Quad {
	return NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), doubleSided, material)
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) (core.Intersection, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel, NaN, or hitting the back of a single sided quad
	if !(math.Abs(denominator) > 1e-12) {
		return core.Intersection{}, false
	}
	if !q.DoubleSided && denominator > 0 {
		return core.Intersection{}, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if !(t > 0) {
		return core.Intersection{}, false
	}

	// Edge coordinates of the hit point
	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.w.Dot(hitVector.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.Intersection{}, false
	}

	normal := q.Normal
	if denominator > 0 {
		normal = normal.Negate()
	}

	return core.Intersection{
		T:        t,
		Point:    hitPoint,
		Normal:   normal,
		Material: q.material,
	}, true
}

// PointAt returns corner + u*U + v*V
func (q *Quad) PointAt(u, v float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(u)).Add(q.V.Multiply(v))
}

// BoundingBox returns the box of the four transformed corners
func (q *Quad) BoundingBox(transform core.Transform) core.AABB {
	return core.NewAABBFromPoints(
		transform.Point(q.PointAt(0, 0)),
		transform.Point(q.PointAt(1, 0)),
		transform.Point(q.PointAt(1, 1)),
		transform.Point(q.PointAt(0, 1)),
	)
}

// Material returns the quad material
func (q *Quad) Material() core.Material {
	return q.material
}
