package material

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// NewGray creates a lambertian material with equal reflectance in every channel
func NewGray(value float64) *Lambertian {
	return NewLambertian(core.NewVec3(value, value, value))
}

// BRDF is constant for a diffuse surface: albedo / 2π
func (l *Lambertian) BRDF(incoming, outgoing core.Vec3) core.Vec3 {
	return l.Albedo.Multiply(1.0 / (2.0 * math.Pi))
}
