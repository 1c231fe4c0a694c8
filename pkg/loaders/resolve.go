package loaders

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrUnknownScene is returned by ResolveScene when name is neither a preset
// nor a scene file in the scenes directory
var ErrUnknownScene = xerrors.New("unknown scene")

// ResolveScene finds a scene by name: built-in presets first, then the JSON
// files in scenesDir by ID (file name without extension). Camera overrides
// are merged over the scene's own camera.
func ResolveScene(name, scenesDir string, overrides scene.CameraConfig) (*scene.Scene, error) {
	if s, err := scene.Lookup(name, overrides); err == nil {
		if err := ValidateCamera(s.CameraConfig); err != nil {
			return nil, xerrors.Errorf("while resolving %q: %w", name, err)
		}
		return s, nil
	}

	files, err := scene.ListSceneFiles(scenesDir)
	if err != nil {
		return nil, xerrors.Errorf("while listing scene files: %w", err)
	}
	for _, info := range files {
		if info.ID != name {
			continue
		}
		s, err := LoadSceneFile(info.FilePath)
		if err != nil {
			return nil, err
		}
		s.CameraConfig = scene.MergeCameraConfig(s.CameraConfig, overrides)
		if err := ValidateCamera(s.CameraConfig); err != nil {
			return nil, xerrors.Errorf("while resolving %q: %w", name, err)
		}
		return s, nil
	}

	return nil, xerrors.Errorf("%q (presets: %v, scenes dir: %q): %w", name, scene.BuiltinNames(), scenesDir, ErrUnknownScene)
}
