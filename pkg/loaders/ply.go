package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian" or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block (vertex, face, or anything else) of the body
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
}

// LoadPLY loads an ASCII or binary little-endian PLY file. Polygons with
// more than three vertices are triangulated as fans.
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(file)
}

// ReadPLY parses PLY data from r
func ReadPLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var body plyValueReader
	switch header.Format {
	case "ascii":
		body = &asciiReader{scanner: newWordScanner(reader)}
	case "binary_little_endian":
		body = &binaryReader{r: reader, order: binary.LittleEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &MeshData{}
	for _, element := range header.Elements {
		if err := readElement(body, element, mesh); err != nil {
			return nil, err
		}
	}

	for _, idx := range mesh.Faces {
		if idx < 0 || idx >= len(mesh.Vertices) {
			return nil, fmt.Errorf("face index %d out of range [0, %d)", idx, len(mesh.Vertices))
		}
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
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
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			last := &header.Elements[len(header.Elements)-1]
			last.Properties = append(last.Properties, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// readElement consumes one element block, keeping vertex positions and face indices
func readElement(body plyValueReader, element PLYElement, mesh *MeshData) error {
	xi, yi, zi := -1, -1, -1
	for i, prop := range element.Properties {
		switch prop.Name {
		case "x":
			xi = i
		case "y":
			yi = i
		case "z":
			zi = i
		}
	}
	isVertex := element.Name == "vertex"
	if isVertex && (xi < 0 || yi < 0 || zi < 0) {
		return fmt.Errorf("vertex element lacks x/y/z properties")
	}

	values := make([]float64, len(element.Properties))
	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Properties {
			if !prop.IsList {
				v, err := body.value(prop.Type)
				if err != nil {
					return fmt.Errorf("%s %d, property %s: %w", element.Name, n, prop.Name, err)
				}
				values[i] = v
				continue
			}

			count, err := body.value(prop.ListType)
			if err != nil {
				return fmt.Errorf("%s %d, list %s: %w", element.Name, n, prop.Name, err)
			}
			list := make([]int, int(count))
			for k := range list {
				v, err := body.value(prop.Type)
				if err != nil {
					return fmt.Errorf("%s %d, list %s: %w", element.Name, n, prop.Name, err)
				}
				list[k] = int(v)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				mesh.Faces = appendFan(mesh.Faces, list)
			}
		}
		if isVertex {
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(values[xi], values[yi], values[zi]))
		}
	}
	return nil
}

// plyValueReader reads one scalar of the given PLY type
type plyValueReader interface {
	value(plyType string) (float64, error)
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) value(plyType string) (float64, error) {
	size := plyTypeSize(plyType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported property type: %s", plyType)
	}
	if _, err := io.ReadFull(b.r, b.buf[:size]); err != nil {
		return 0, err
	}
	data := b.buf[:size]

	switch plyType {
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
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}

// plyTypeSize returns the byte size of a PLY scalar type, 0 if unknown
func plyTypeSize(plyType string) int {
	switch plyType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func newWordScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return scanner
}

func (a *asciiReader) value(plyType string) (float64, error) {
	if plyTypeSize(plyType) == 0 {
		return 0, fmt.Errorf("unsupported property type: %s", plyType)
	}
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}
