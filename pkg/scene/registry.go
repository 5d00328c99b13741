package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

type builtin struct {
	create      func() *Scene
	displayName string
	description string
}

var builtins = map[string]builtin{
	"cornell": {
		create:      NewCornellScene,
		displayName: "Cornell Box",
		description: "Classic Cornell box with two diffuse boxes and a ceiling light",
	},
	"cornell-mirror": {
		create:      NewCornellMirrorScene,
		displayName: "Cornell Box (Mirror)",
		description: "Cornell box whose tall box is a perfect mirror",
	},
	"plane-light": {
		create:      NewPlaneLightScene,
		displayName: "Plane Light",
		description: "A sphere on a diffuse plane under a square area light",
	},
	"dark": {
		create:      NewDarkScene,
		displayName: "Dark Cornell Box",
		description: "Cornell box without emitters; renders black",
	},
}

// Names lists the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds and preprocesses a built-in scene
func Create(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	s := b.create()
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateWithMesh builds a built-in scene and places the mesh at meshPath on
// its floor before preprocessing. An empty meshPath behaves like Create.
func CreateWithMesh(name, meshPath string) (*Scene, error) {
	if meshPath == "" {
		return Create(name)
	}

	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}

	mesh, err := loaders.LoadMesh(meshPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}

	s := b.create()
	min, max := mesh.Bounds()
	transform := CornellMeshTransform(min, max, 200, 180)
	if err := s.AddMesh(mesh, transform, material.NewDiffuse(core.NewVec3(0.725, 0.71, 0.68))); err != nil {
		return nil, err
	}
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}
