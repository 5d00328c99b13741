package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a selectable scene or mesh with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "mesh"
	FilePath    string `json:"filePath"`    // Path to the mesh file (mesh type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

var meshExtensions = map[string]bool{".ply": true, ".gltf": true, ".glb": true}

// ListMeshes scans dir for mesh files that can be placed in the Cornell box.
// A missing directory yields an empty list.
func ListMeshes(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan mesh directory: %w", err)
	}

	var meshes []SceneInfo
	for _, entry := range entries {
		if entry.IsDir() || !meshExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := ParseMeshMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", entry.Name(), err)
			continue
		}
		meshes = append(meshes, info)
	}

	sort.Slice(meshes, func(i, j int) bool {
		return meshes[i].DisplayName < meshes[j].DisplayName
	})
	return meshes, nil
}

// ParseMeshMetadata builds a SceneInfo for a mesh file. PLY headers may carry
// "comment Name: ..." and "comment Description: ..." lines.
func ParseMeshMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          fmt.Sprintf("mesh:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Meshes",
		Type:        "mesh",
		FilePath:    filePath,
	}

	if !strings.EqualFold(filepath.Ext(filePath), ".ply") {
		return info, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "end_header" {
			break
		}
		if !strings.HasPrefix(line, "comment ") {
			continue
		}

		content := strings.TrimPrefix(line, "comment ")
		switch {
		case strings.HasPrefix(content, "Name:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Name:"))
			info.DisplayName = info.Name
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the meshes found in meshDir
func ListAllScenes(meshDir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtIns := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		b := builtins[name]
		builtIns = append(builtIns, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: b.displayName,
			Description: b.description,
			Group:       builtInGroup,
			Type:        "builtin",
		})
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: builtIns})

	meshes, err := ListMeshes(meshDir)
	if err != nil {
		return response, fmt.Errorf("failed to list meshes: %w", err)
	}
	if len(meshes) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: "Meshes", Scenes: meshes})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "stanford-bunny" -> "Stanford Bunny"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
