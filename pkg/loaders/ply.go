package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY input
var ErrInvalidPLY = errors.New("invalid PLY data")

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian" or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block ("vertex", "face", ...) of the body
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the positions and triangulated faces of a PLY mesh
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
}

// LoadPLY loads a PLY file
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses ascii or binary PLY data. Only vertex positions and
// vertex_indices face lists are kept; polygons are split into triangle fans.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var body plyBody
	switch header.Format {
	case "ascii":
		body = &asciiBody{scanner: newWordScanner(reader)}
	case "binary_little_endian":
		body = &binaryBody{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &binaryBody{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		if err := readElement(body, element, data); err != nil {
			return nil, err
		}
	}

	for _, idx := range data.Faces {
		if idx < 0 || idx >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: face index %d out of range", ErrInvalidPLY, idx)
		}
	}
	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && !(err == io.EOF && line == "end_header") {
			return nil, fmt.Errorf("%w: header: %v", ErrInvalidPLY, err)
		}

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
			}
			first = false
			continue
		}
		if line == "end_header" {
			return header, nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Properties = append(el.Properties, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unknown list type in %v", ErrInvalidPLY, parts)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if getTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, prop.Type)
	}
	return prop, nil
}

// getTypeSize returns the byte size of a PLY scalar type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
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

// maxListLength bounds a single list property so a corrupt count cannot
// force a huge allocation
const maxListLength = 1 << 16

func readElement(body plyBody, element PLYElement, data *PLYData) error {
	for i := 0; i < element.Count; i++ {
		var pos [3]float64
		for _, prop := range element.Properties {
			if prop.IsList {
				n, err := body.scalar(prop.ListType)
				if err != nil {
					return fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, element.Name, i, err)
				}
				if n < 0 || n > maxListLength || n != math.Trunc(n) {
					return fmt.Errorf("%w: %s %d: bad list length %v", ErrInvalidPLY, element.Name, i, n)
				}
				indices := make([]int, int(n))
				for k := range indices {
					v, err := body.scalar(prop.DataType)
					if err != nil {
						return fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, element.Name, i, err)
					}
					indices[k] = int(v)
				}
				if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
					// Triangle fan around the first vertex
					for k := 1; k+1 < len(indices); k++ {
						data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
					}
				}
				continue
			}

			v, err := body.scalar(prop.Type)
			if err != nil {
				return fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, element.Name, i, err)
			}
			if element.Name == "vertex" {
				switch prop.Name {
				case "x":
					pos[0] = v
				case "y":
					pos[1] = v
				case "z":
					pos[2] = v
				}
			}
		}
		if element.Name == "vertex" {
			data.Vertices = append(data.Vertices, core.NewVec3(pos[0], pos[1], pos[2]))
		}
	}
	return nil
}

// plyBody reads successive scalar values of the element data
type plyBody interface {
	scalar(dataType string) (float64, error)
}

type binaryBody struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryBody) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unknown type %q", dataType)
	}
	p := b.buf[:size]
	if _, err := io.ReadFull(b.r, p); err != nil {
		return 0, err
	}
	switch dataType {
	case "char", "int8":
		return float64(int8(p[0])), nil
	case "uchar", "uint8":
		return float64(p[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(p))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(p)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(p))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(p)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(p))), nil
	default:
		return math.Float64frombits(b.order.Uint64(p)), nil
	}
}

type asciiBody struct {
	scanner *bufio.Scanner
}

func newWordScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return s
}

func (a *asciiBody) scalar(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}
