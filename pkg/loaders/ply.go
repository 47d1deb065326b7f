package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// plyPrealloc caps how much a header count may preallocate; the body has
// to back any count beyond it
const plyPrealloc = 1 << 16

// plyMaxListLength is the longest list a face may carry
const plyMaxListLength = 1 << 16

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // For list properties, the type of the count
}

// plyElement is an element block such as "vertex" or "face"
type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Elements []plyElement
}

// plyValueReader reads one scalar of the given PLY type from the body
type plyValueReader interface {
	scalar(typ string) (float64, error)
}

// ParsePLY reads vertex positions and faces from an ASCII or binary PLY
// stream. Other elements and properties are read and discarded.
func ParsePLY(r io.Reader) (*MeshData, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported PLY format %q", ErrMalformed, header.Format)
	}

	mesh := &MeshData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, mesh)
		case "face":
			err = readPLYFaces(values, element, mesh)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformed, element.Name, err)
		}
	}

	for _, index := range mesh.Faces {
		if index < 0 || index >= len(mesh.Vertices) {
			return nil, fmt.Errorf("%w: face index %d out of range (%d vertices)", ErrMalformed, index, len(mesh.Vertices))
		}
	}

	return mesh, nil
}

// parsePLYHeader parses everything up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrMalformed)
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrMalformed)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line", ErrMalformed)
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line", ErrMalformed)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrMalformed, parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before element", ErrMalformed)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			last := &header.Elements[len(header.Elements)-1]
			last.Properties = append(last.Properties, prop)
		default:
			return nil, fmt.Errorf("%w: unexpected header line %q", ErrMalformed, strings.TrimSpace(line))
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		prop := plyProperty{Name: parts[3], Type: parts[2], IsList: true, CountType: parts[1]}
		if plyTypeSize(prop.Type) == 0 || plyTypeSize(prop.CountType) == 0 {
			return plyProperty{}, fmt.Errorf("%w: unknown type in list property %q", ErrMalformed, prop.Name)
		}
		return prop, nil
	}

	if len(parts) != 2 || parts[0] == "list" {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition", ErrMalformed)
	}
	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("%w: unknown property type %q", ErrMalformed, parts[0])
	}
	return plyProperty{Name: parts[1], Type: parts[0]}, nil
}

func readPLYVertices(values plyValueReader, element plyElement, mesh *MeshData) error {
	axes := [3]int{-1, -1, -1}
	for i, prop := range element.Properties {
		switch prop.Name {
		case "x":
			axes[0] = i
		case "y":
			axes[1] = i
		case "z":
			axes[2] = i
		}
	}
	for _, i := range axes {
		if i < 0 || element.Properties[i].IsList {
			return fmt.Errorf("vertex element needs scalar x, y and z")
		}
	}

	mesh.Vertices = make([]core.Vec3, 0, min(element.Count, plyPrealloc))
	row := make([]float64, len(element.Properties))
	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Properties {
			if prop.IsList {
				if err := skipPLYList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.scalar(prop.Type)
			if err != nil {
				return err
			}
			row[i] = value
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(row[axes[0]], row[axes[1]], row[axes[2]]))
	}
	return nil
}

func readPLYFaces(values plyValueReader, element plyElement, mesh *MeshData) error {
	indexProp := -1
	for i, prop := range element.Properties {
		if prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
			indexProp = i
		}
	}
	if indexProp < 0 {
		return fmt.Errorf("face element has no vertex_indices list")
	}

	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Properties {
			if i != indexProp {
				if err := skipPLYProperty(values, prop); err != nil {
					return err
				}
				continue
			}

			count, err := listCount(values, prop)
			if err != nil {
				return err
			}
			indices := make([]int, count)
			for j := range indices {
				value, err := values.scalar(prop.Type)
				if err != nil {
					return err
				}
				indices[j] = int(value)
			}
			mesh.addPolygon(indices)
		}
	}
	return nil
}

func skipPLYElement(values plyValueReader, element plyElement) error {
	for n := 0; n < element.Count; n++ {
		for _, prop := range element.Properties {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop plyProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop plyProperty) error {
	count, err := listCount(values, prop)
	if err != nil {
		return err
	}
	for j := 0; j < count; j++ {
		if _, err := values.scalar(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

func listCount(values plyValueReader, prop plyProperty) (int, error) {
	count, err := values.scalar(prop.CountType)
	if err != nil {
		return 0, err
	}
	if count < 0 || count > plyMaxListLength || count != math.Trunc(count) {
		return 0, fmt.Errorf("invalid list length %v for %s", count, prop.Name)
	}
	return int(count), nil
}

// plyTypeSize returns the size in bytes of a PLY scalar type, 0 if unknown
func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) scalar(typ string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) scalar(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unknown type %q", typ)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}
