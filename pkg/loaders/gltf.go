package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LoadGLTF loads every triangle primitive of a .gltf or .glb file into a
// single mesh. Node transforms are ignored; positions are taken as stored.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	mesh := &MeshData{}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("gltf mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("gltf %q contains no triangles", path)
	}
	return mesh, nil
}

// appendPrimitive converts one glTF primitive and appends it to mesh
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *MeshData) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	base := len(mesh.Vertices)
	for _, p := range positions {
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	if prim.Indices == nil {
		// Non-indexed: consecutive vertex triples
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, base+i, base+i+1, base+i+2)
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
	}
	return nil
}
