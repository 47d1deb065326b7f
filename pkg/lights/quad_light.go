package lights

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
)

// QuadLight is a rectangular area light: a quad placed by a transform
// emitting from its front face
type QuadLight struct {
	Quad      *geometry.Quad
	Transform core.Transform
	Power     float64
	Color     core.Vec3
	normal    core.Vec3 // Cached world-space emitting normal
}

// NewQuadLight creates a new quad light
func NewQuadLight(quad *geometry.Quad, transform core.Transform, power float64, color core.Vec3) *QuadLight {
	return &QuadLight{
		Quad:      quad,
		Transform: transform,
		Power:     power,
		Color:     color,
		normal:    transform.Normal(quad.Normal),
	}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Samples places n×n points on the quad with the given technique
func (ql *QuadLight) Samples(technique core.Technique, n int, sampler core.Sampler) []Sample {
	positions := core.SampleRect(technique, max(n, 1), sampler)

	samples := make([]Sample, 0, len(positions))
	for _, uv := range positions {
		samples = append(samples, Sample{
			Point:     ql.Transform.Point(ql.Quad.PointAt(uv[0], uv[1])),
			Normal:    ql.normal,
			HasNormal: true,
		})
	}
	return samples
}

// Radiance spreads the power over the hemisphere in front of the quad
func (ql *QuadLight) Radiance(core.Vec3) core.Vec3 {
	return ql.Color.Multiply(ql.Power / (2 * math.Pi))
}

// Normal returns the world-space emitting normal
func (ql *QuadLight) Normal() core.Vec3 {
	return ql.normal
}
