package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/geometry"
	"github.com/df07/go-chunk-raytracer/pkg/lights"
	"github.com/df07/go-chunk-raytracer/pkg/loaders"
	"github.com/df07/go-chunk-raytracer/pkg/material"
)

// meshFitSize is the largest extent a loaded mesh is scaled to
const meshFitSize = 3.0

// LoadMeshScene loads an .obj or .ply file and places it in front of the camera
func LoadMeshScene(path string, cfg Config) (*Scene, error) {
	data, err := loaders.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return NewMeshScene(cfg, data)
}

// NewMeshScene stands a mesh on a floor, scaled to fit the view. Every
// triangle becomes its own instance so the acceleration structure sees
// the mesh geometry.
func NewMeshScene(cfg Config, data *loaders.MeshData) (*Scene, error) {
	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("mesh has no triangles")
	}

	bounds := data.Bounds()
	size := bounds.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if extent > 0 {
		scale = meshFitSize / extent
	}

	// Centre on x/z, rest the lowest point on the floor at y = -1
	center := bounds.Center()
	fit := core.Identity().
		Translate(core.NewVec3(-center.X, -bounds.Min.Y, -center.Z)).
		ScaleAll(scale).
		Translate(core.NewVec3(0, -1, 3))

	white := material.NewGray(0.8)
	instances := make([]*accel.Instance, 0, data.TriangleCount()+1)
	for i := 0; i < len(data.Faces); i += 3 {
		v0, v1, v2 := data.Vertices[data.Faces[i]], data.Vertices[data.Faces[i+1]], data.Vertices[data.Faces[i+2]]
		instances = append(instances, accel.NewInstance(geometry.NewTriangle(v0, v1, v2, white), fit))
	}
	instances = append(instances, accel.NewInstance(
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), false, material.NewGray(1)),
		core.Identity(),
	))

	camera := NewCamera(
		core.NewVec3(0, 1, -3),
		core.NewVec3(0, -0.15, 1),
		core.NewVec3(0, 1, 0),
		60,
		cfg.Width,
		cfg.Height,
	)

	sceneLights := []lights.Light{
		lights.NewQuadLight(
			geometry.NewUnitSquare(false, white),
			core.Identity().ScaleAll(2).Rotate(core.XAxis, math.Pi).Translate(core.NewVec3(-1, 6, 2)),
			1000,
			core.NewVec3(1, 1, 1),
		),
		lights.NewPointLight(core.NewVec3(-3, 3, -1), 400, core.NewVec3(1, 1, 1)),
	}

	return New(cfg, instances, sceneLights, camera)
}
