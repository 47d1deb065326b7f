package geometry

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Sphere is the unit sphere centred at the object-space origin. Position and
// radius come from the instance transform.
type Sphere struct {
	material core.Material
}

// NewSphere creates a new unit sphere
func NewSphere(material core.Material) *Sphere {
	return &Sphere{material: material}
}

// Intersect tests the ray against the unit sphere and returns the nearest hit with t > 0
func (s *Sphere) Intersect(ray core.Ray) (core.Intersection, bool) {
	origin, direction := ray.Origin, ray.Direction

	// Quadratic equation coefficients: at² + bt + c = 0
	a := direction.Dot(direction)
	halfB := direction.Dot(origin)
	c := origin.Dot(origin) - 1.0

	discriminant := halfB*halfB - a*c

	// Negated so NaN input counts as a miss
	if !(discriminant >= 0) || a == 0 {
		return core.Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	t := (-halfB - sqrtD) / a
	if !(t > 0) {
		t = (-halfB + sqrtD) / a
		if !(t > 0) {
			return core.Intersection{}, false
		}
	}

	point := ray.At(t)
	return core.Intersection{
		T:        t,
		Point:    point,
		Normal:   point.Normalize(),
		Material: s.material,
	}, true
}

// BoundingBox returns the tight box of the transformed sphere (an ellipsoid).
// Each half-extent is the length of the matching row of the linear part.
func (s *Sphere) BoundingBox(transform core.Transform) core.AABB {
	m := transform.Matrix()
	center := transform.Point(core.NewVec3(0, 0, 0))

	var extent [3]float64
	for row := 0; row < 3; row++ {
		extent[row] = math.Sqrt(m.At(row, 0)*m.At(row, 0) + m.At(row, 1)*m.At(row, 1) + m.At(row, 2)*m.At(row, 2))
	}
	half := core.NewVec3(extent[0], extent[1], extent[2])

	return core.NewAABB(center.Subtract(half), center.Add(half))
}

// Material returns the sphere material
func (s *Sphere) Material() core.Material {
	return s.material
}
