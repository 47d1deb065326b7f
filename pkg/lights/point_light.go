package lights

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	Position core.Vec3
	Power    float64
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, power float64, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Power: power, Color: color}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Samples always returns the light position
func (pl *PointLight) Samples(core.Technique, int, core.Sampler) []Sample {
	return []Sample{{Point: pl.Position}}
}

// Radiance spreads the power over the full sphere
func (pl *PointLight) Radiance(core.Vec3) core.Vec3 {
	return pl.Color.Multiply(pl.Power / (4 * math.Pi))
}
