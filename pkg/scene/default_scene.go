package scene

import (
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
	"github.com/df07/go-chunk-raytracer/pkg/lights"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres on a floor with a back wall, a box,
// a diamond and a ceiling light plus a point light
func NewDefaultScene(cfg Config) (*Scene, error) {
	camera := NewCamera(
		core.NewVec3(0, 0.5, -3),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		60,
		cfg.Width,
		cfg.Height,
	)

	white := material.NewGray(1)

	// One unit sphere shared by every sphere instance
	red := geometry.NewSphere(material.NewLambertian(core.NewVec3(1, 0, 0)))
	cyan := geometry.NewSphere(material.NewLambertian(core.NewVec3(0, 1, 1)))
	green := geometry.NewSphere(material.NewLambertian(core.NewVec3(0, 1, 0)))

	diamond, err := newDiamond(white)
	if err != nil {
		return nil, err
	}

	instances := []*accel.Instance{
		accel.NewInstance(red, core.Identity().Translate(core.NewVec3(0, 0, 3))),
		accel.NewInstance(cyan, core.Identity().
			Scale(2, 1, 1).
			Rotate(core.ZAxis, math.Pi/4).
			Translate(core.NewVec3(2, 0, 4))),
		accel.NewInstance(green, core.Identity().Translate(core.NewVec3(-2, 0, 4))),
		accel.NewInstance(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), false, white), core.Identity()),
		accel.NewInstance(geometry.NewUnitSquare(true, white), core.Identity().
			ScaleAll(4).
			Rotate(core.XAxis, -math.Pi/2).
			Translate(core.NewVec3(0, -1, 6))),
		accel.NewInstance(geometry.NewBoxFromOrigin(core.NewVec3(1, 1, 1), white), core.Identity().
			Translate(core.NewVec3(-4, 2, 4))),
		accel.NewInstance(diamond, core.Identity().
			ScaleAll(0.6).
			Translate(core.NewVec3(0.5, 1.6, 4.5))),
	}

	sceneLights := []lights.Light{
		lights.NewQuadLight(
			geometry.NewUnitSquare(false, white),
			core.Identity().Rotate(core.XAxis, math.Pi).Translate(core.NewVec3(0, 6, 0)),
			1000,
			core.NewVec3(1, 1, 1),
		),
		lights.NewPointLight(core.NewVec3(-2, 2, 0), 600, core.NewVec3(1, 1, 1)),
	}

	return New(cfg, instances, sceneLights, camera)
}

// newDiamond builds an octahedron with unit half-diagonals
func newDiamond(mat core.Material) (*geometry.TriangleMesh, error) {
	vertices := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, -1),
	}
	faces := []int{
		0, 2, 4, 2, 1, 4, 1, 3, 4, 3, 0, 4,
		2, 0, 5, 1, 2, 5, 3, 1, 5, 0, 3, 5,
	}
	return geometry.NewTriangleMesh(vertices, faces, mat)
}
