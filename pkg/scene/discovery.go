package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // Name for listings
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

// ListScenes returns the built-in presets followed by the JSON scene files
// found in dir. A missing dir is not an error.
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: name,
			Description: builtinScenes[name].description,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(scenes, files...), nil
}

// ListSceneFiles scans dir for *.json scene files and reads their metadata
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, xerrors.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files, keep listing the rest
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the top-level name and description of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return SceneInfo{}, err
	}
	defer f.Close()

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(f).Decode(&header); err != nil {
		return SceneInfo{}, xerrors.Errorf("failed to parse %s: %w", filePath, err)
	}

	id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	displayName := header.Name
	if displayName == "" {
		displayName = id
	}

	return SceneInfo{
		ID:          id,
		DisplayName: displayName,
		Description: header.Description,
		Type:        "file",
		FilePath:    filePath,
	}, nil
}
