package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that acts as the neutral element for Union.
// It is only meant as an accumulator seed and never intersects anything.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// NewAABBFromOrigin creates the box spanned by the origin and a corner point
func NewAABBFromOrigin(corner Vec3) AABB {
	return NewAABBFromPoints(NewVec3(0, 0, 0), corner)
}

// Slab clips the ray's parametric line against the three slabs of the box and
// returns the resulting [tNear, tFar] interval together with the axes that
// produced each bound (-1 when every slab was parallel to the ray).
// ok is false when the interval is empty, which includes any NaN input and
// inverted boxes.
func (aabb AABB) Slab(ray Ray) (tNear, tFar float64, nearAxis, farAxis int, ok bool) {
	if !aabb.IsValid() {
		return 0, 0, -1, -1, false
	}

	tNear = math.Inf(-1)
	tFar = math.Inf(1)
	nearAxis, farAxis = -1, -1

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if direction == 0 {
			// Parallel to this slab: inside it or never
			if !(origin >= min && origin <= max) {
				return 0, 0, -1, -1, false
			}
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction
		if math.IsNaN(t1) || math.IsNaN(t2) {
			return 0, 0, -1, -1, false
		}
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tNear {
			tNear = t1
			nearAxis = axis
		}
		if t2 < tFar {
			tFar = t2
			farAxis = axis
		}

		// Written negated so NaN fails the test
		if !(tNear <= tFar) {
			return 0, 0, -1, -1, false
		}
	}

	return tNear, tFar, nearAxis, farAxis, true
}

// FaceNormal returns the outward normal of the face on the given axis that a
// ray with this direction crosses first (entering) or last (exiting).
func FaceNormal(axis int, direction Vec3, entering bool) Vec3 {
	sign := -math.Copysign(1, direction.Axis(axis))
	if !entering {
		sign = -sign
	}
	switch axis {
	case 0:
		return NewVec3(sign, 0, 0)
	case 1:
		return NewVec3(0, sign, 0)
	default:
		return NewVec3(0, 0, sign)
	}
}

// Intersect runs the slab test and returns the entry distance, the entry point
// and the normal of the face the ray enters through.
//
// A ray starting inside the box reports t = 0, the origin as hit point and the
// reversed direction as normal. Boxes behind the ray, inverted boxes and any
// NaN in the computation report no hit.
func (aabb AABB) Intersect(ray Ray) (t float64, point, normal Vec3, ok bool) {
	tNear, tFar, nearAxis, _, ok := aabb.Slab(ray)
	if !ok || !(tFar >= 0) {
		return 0, Vec3{}, Vec3{}, false
	}

	if tNear <= 0 || nearAxis < 0 {
		return 0, ray.Origin, ray.Direction.Negate(), true
	}

	return tNear, ray.At(tNear), FaceNormal(nearAxis, ray.Direction, true), true
}

// Hit reports whether the ray enters the box within [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	t, _, _, ok := aabb.Intersect(ray)
	return ok && t >= tMin && t <= tMax
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(point Vec3) bool {
	return aabb.Min.X <= point.X && point.X <= aabb.Max.X &&
		aabb.Min.Y <= point.Y && point.Y <= aabb.Max.Y &&
		aabb.Min.Z <= point.Z && point.Z <= aabb.Max.Z
}

// ContainsBox reports whether other lies entirely inside this box
func (aabb AABB) ContainsBox(other AABB) bool {
	return aabb.Contains(other.Min) && aabb.Contains(other.Max)
}

// Transformed returns the box bounding all eight transformed corners
func (aabb AABB) Transformed(transform Transform) AABB {
	if !aabb.IsValid() {
		return aabb
	}

	box := EmptyAABB()
	for _, x := range [2]float64{aabb.Min.X, aabb.Max.X} {
		for _, y := range [2]float64{aabb.Min.Y, aabb.Max.Y} {
			for _, z := range [2]float64{aabb.Min.Z, aabb.Max.Z} {
				corner := transform.Point(NewVec3(x, y, z))
				box.Min = box.Min.Min(corner)
				box.Max = box.Max.Max(corner)
			}
		}
	}
	return box
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
