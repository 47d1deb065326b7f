package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// ParseOBJ reads vertex positions ("v") and faces ("f") from a Wavefront OBJ
// stream. Texture and normal references in faces are ignored, negative
// indices count back from the last vertex and polygons are fan-triangulated.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	mesh := &MeshData{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrMalformed, lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
				}
				xyz[i] = value
			}
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))

		case "f":
			indices := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				index, err := objIndex(field, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
				}
				indices = append(indices, index)
			}
			mesh.addPolygon(indices)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// objIndex resolves the vertex part of a face reference like "7", "7/2/3" or "-1//4"
func objIndex(field string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}

	index, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", field)
	}

	switch {
	case index > 0 && index <= vertexCount:
		return index - 1, nil
	case index < 0 && -index <= vertexCount:
		return vertexCount + index, nil
	default:
		return 0, fmt.Errorf("face index %d out of range (%d vertices)", index, vertexCount)
	}
}
