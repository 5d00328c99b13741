package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MeshData contains triangle geometry read from a mesh file
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions
	Faces    []int       // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// Bounds returns the min and max corners of the vertex positions
func (m *MeshData) Bounds() (core.Vec3, core.Vec3) {
	if len(m.Vertices) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	box := core.NewAABBFromPoints(m.Vertices...)
	return box.Min, box.Max
}

// LoadMesh loads a PLY, glTF or GLB file based on its extension
func LoadMesh(path string) (*MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		return LoadPLY(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %q", filepath.Ext(path))
	}
}

// appendFan triangulates a polygon as a fan around its first vertex
func appendFan(faces []int, polygon []int) []int {
	for k := 1; k+1 < len(polygon); k++ {
		faces = append(faces, polygon[0], polygon[k], polygon[k+1])
	}
	return faces
}
