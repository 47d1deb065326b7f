package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Axis selects a rotation axis
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Transform is an affine transformation together with its inverse.
// Transforms are values; every builder method returns a new Transform with the
// operation applied after the existing ones.
type Transform struct {
	matrix  mgl64.Mat4
	inverse mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{matrix: mgl64.Ident4(), inverse: mgl64.Ident4()}
}

// Translate appends a translation
func (t Transform) Translate(v Vec3) Transform {
	return Transform{
		matrix:  mgl64.Translate3D(v.X, v.Y, v.Z).Mul4(t.matrix),
		inverse: t.inverse.Mul4(mgl64.Translate3D(-v.X, -v.Y, -v.Z)),
	}
}

// Scale appends a non-uniform scale. Zero factors are not invertible and
// produce a degenerate transform.
func (t Transform) Scale(x, y, z float64) Transform {
	return Transform{
		matrix:  mgl64.Scale3D(x, y, z).Mul4(t.matrix),
		inverse: t.inverse.Mul4(mgl64.Scale3D(1/x, 1/y, 1/z)),
	}
}

// ScaleAll appends a uniform scale
func (t Transform) ScaleAll(s float64) Transform {
	return t.Scale(s, s, s)
}

// Rotate appends a rotation around one of the coordinate axes
func (t Transform) Rotate(axis Axis, radians float64) Transform {
	return Transform{
		matrix:  rotation(axis, radians).Mul4(t.matrix),
		inverse: t.inverse.Mul4(rotation(axis, -radians)),
	}
}

func rotation(axis Axis, radians float64) mgl64.Mat4 {
	switch axis {
	case XAxis:
		return mgl64.HomogRotate3DX(radians)
	case YAxis:
		return mgl64.HomogRotate3DY(radians)
	default:
		return mgl64.HomogRotate3DZ(radians)
	}
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{matrix: t.inverse, inverse: t.matrix}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.matrix
}

// IsIdentity reports whether the transform leaves every point unchanged
func (t Transform) IsIdentity() bool {
	return t.matrix.ApproxEqual(mgl64.Ident4())
}

// Point maps a point (w = 1)
func (t Transform) Point(p Vec3) Vec3 {
	return fromVec4(t.matrix.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// Direction maps a direction (w = 0); the result is not normalized
func (t Transform) Direction(d Vec3) Vec3 {
	return fromVec4(t.matrix.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0}))
}

// Normal maps a surface normal with the inverse transpose and normalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	return fromVec4(t.inverse.Transpose().Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})).Normalize()
}

// Ray maps a ray without renormalizing its direction so that distances along
// the mapped ray stay proportional to the original ones
func (t Transform) Ray(r Ray) Ray {
	return Ray{Origin: t.Point(r.Origin), Direction: t.Direction(r.Direction)}
}

func fromVec4(v mgl64.Vec4) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
