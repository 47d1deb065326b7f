package scene

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
	"github.com/df07/go-chunk-raytracer/pkg/lights"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a gridSize x gridSize grid of spheres on a floor.
// Large grids are the stress case for the acceleration structure.
func NewSphereGridScene(cfg Config, gridSize int) (*Scene, error) {
	gridSize = max(gridSize, 1)

	camera := NewCamera(
		core.NewVec3(0, 7, -12),
		core.NewVec3(0, -0.55, 1),
		core.NewVec3(0, 1, 0),
		55,
		cfg.Width,
		cfg.Height,
	)

	// Fit the grid into roughly 9x9 units regardless of its size
	const targetArea = 9.0
	spacing := targetArea / float64(max(gridSize-1, 1))
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	instances := make([]*accel.Instance, 0, gridSize*gridSize+1)
	instances = append(instances, accel.NewInstance(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), false, material.NewGray(0.5)),
		core.Identity(),
	))

	// Hue varies along X, chroma along Z
	const baseLightness, minChroma, maxChroma = 0.65, 0.05, 0.25
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			fi := float64(i) / float64(max(gridSize-1, 1))
			fj := float64(j) / float64(max(gridSize-1, 1))

			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, minChroma+fj*(maxChroma-minChroma), fi*360)

			position := core.NewVec3(
				float64(i)*spacing-targetArea/2,
				radius,
				float64(j)*spacing-targetArea/2,
			)
			sphere := geometry.NewSphere(material.NewLambertian(color))
			instances = append(instances, accel.NewInstance(sphere, core.Identity().ScaleAll(radius).Translate(position)))
		}
	}

	sceneLights := []lights.Light{
		lights.NewPointLight(core.NewVec3(6, 12, -6), 4000, core.NewVec3(1, 0.96, 0.9)),
		lights.NewQuadLight(
			geometry.NewUnitSquare(false, material.NewGray(1)),
			core.Identity().
				Translate(core.NewVec3(-0.5, 0, -0.5)).
				ScaleAll(4).
				Rotate(core.XAxis, math.Pi).
				Translate(core.NewVec3(0, 10, 0)),
			2000,
			core.NewVec3(0.9, 0.95, 1),
		),
	}

	return New(cfg, instances, sceneLights, camera)
}
