// Package loaders reads triangle meshes from OBJ and PLY files.
package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/log"
)

var (
	// ErrUnsupportedMesh is returned for file extensions that have no loader
	ErrUnsupportedMesh = errors.New("loaders: unsupported mesh format")
	// ErrMalformed is returned when a mesh file cannot be parsed
	ErrMalformed = errors.New("loaders: malformed mesh file")
)

var logger = log.New("loaders")

// MeshData contains the raw data loaded from a mesh file
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// Bounds returns the box around all vertices
func (m *MeshData) Bounds() core.AABB {
	return core.NewAABBFromPoints(m.Vertices...)
}

// addPolygon fan-triangulates a polygon given as vertex indices. Polygons
// with fewer than 3 vertices are dropped.
func (m *MeshData) addPolygon(indices []int) {
	for i := 2; i < len(indices); i++ {
		m.Faces = append(m.Faces, indices[0], indices[i-1], indices[i])
	}
}

// LoadMesh loads an .obj or .ply file
func LoadMesh(filename string) (*MeshData, error) {
	start := time.Now()

	var parse func(*os.File) (*MeshData, error)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		parse = func(f *os.File) (*MeshData, error) { return ParseOBJ(f) }
	case ".ply":
		parse = func(f *os.File) (*MeshData, error) { return ParsePLY(f) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMesh, filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	mesh, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(mesh.Vertices), mesh.TriangleCount(), time.Since(start))
	return mesh, nil
}
