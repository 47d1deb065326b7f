package lights

import "github.com/df07/go-chunk-raytracer/pkg/core"

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// Light is a source of direct illumination. Lights are immutable and shared
// by every render goroutine; randomness comes from the caller's sampler.
type Light interface {
	Type() LightType

	// Samples returns the points used to estimate the light's contribution.
	// n is the number of samples per side for area lights.
	Samples(technique core.Technique, n int, sampler core.Sampler) []Sample

	// Radiance returns the radiance emitted from a sampled point
	Radiance(point core.Vec3) core.Vec3
}

// Sample is a point on a light
type Sample struct {
	Point     core.Vec3 // Point on the light source
	Normal    core.Vec3 // Emitting surface normal, valid when HasNormal is set
	HasNormal bool      // Point lights have no surface
}
