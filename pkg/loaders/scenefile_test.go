package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestLoadSceneFile_DefaultWorld(t *testing.T) {
	s, err := LoadSceneFile(filepath.Join("testdata", "default_world.json"))
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	if s.Name != "Default world" {
		t.Errorf("Expected name 'Default world', got %q", s.Name)
	}
	if s.ShapeCount() != 2 {
		t.Fatalf("Expected 2 shapes, got %d", s.ShapeCount())
	}

	wantCamera := scene.CameraConfig{
		Width:       11,
		Height:      11,
		FieldOfView: math.Pi / 2,
		From:        core.Point(0, 0, -5),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
	if diff := cmp.Diff(wantCamera, s.CameraConfig, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Unexpected camera (-want +got):\n%s", diff)
	}

	// The file describes the reference world, so it must shade identically
	reference := scene.NewDefaultWorld()
	rays := []core.Ray{
		core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)),
		core.NewRay(core.Point(0, 0, 0.75), core.Vector(0, 0, -1)),
		core.NewRay(core.Point(0, 0, -5), core.Vector(0, 1, 0)),
		core.NewRay(core.Point(0.3, 0.2, -5), core.Vector(0, 0, 1)),
	}
	for _, ray := range rays {
		want := reference.ColorAt(ray, scene.MaxBounces)
		if got := s.World.ColorAt(ray, scene.MaxBounces); !got.ApproxEqual(want) {
			t.Errorf("ColorAt(%v) = %v, expected %v", ray, got, want)
		}
	}
}

func TestLoadSceneFile_NameFromFile(t *testing.T) {
	s, err := LoadSceneFile(filepath.Join("testdata", "unnamed.json"))
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if s.Name != "unnamed" {
		t.Errorf("Expected name 'unnamed', got %q", s.Name)
	}
	if s.World.Light != nil {
		t.Errorf("Expected no light")
	}
	if diff := cmp.Diff(scene.DefaultCameraConfig(), s.CameraConfig); diff != "" {
		t.Errorf("Expected default camera (-want +got):\n%s", diff)
	}
}

func TestLoadSceneFile_Missing(t *testing.T) {
	_, err := LoadSceneFile(filepath.Join("testdata", "does-not-exist.json"))
	if err == nil {
		t.Fatalf("Expected an error for a missing file")
	}
	if !xerrors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist in the chain, got %v", err)
	}
}

func TestLoadSceneFile_ExampleScenes(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadSceneFile(file)
			if err != nil {
				t.Fatalf("LoadSceneFile failed: %v", err)
			}
			if s.ShapeCount() == 0 {
				t.Errorf("Expected shapes in %s", file)
			}
			if s.World.Light == nil {
				t.Errorf("Expected a light in %s", file)
			}
		})
	}
}

func TestParseScene_TransformOrder(t *testing.T) {
	doc := `{"shapes": [{"type": "sphere", "transform": [
		{"op": "translate", "args": [1, 0, 0]},
		{"op": "scale", "args": [2, 2, 2]}
	]}]}`

	s, err := ParseScene(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	shape := s.World.Registry.At(0)
	got := shape.Data().Transform().MultiplyTuple(core.Point(0, 0, 0))
	if !got.ApproxEqual(core.Point(2, 0, 0)) {
		t.Errorf("Expected translate then scale to move the origin to (2, 0, 0), got %v", got)
	}
}

func TestParseScene_Materials(t *testing.T) {
	doc := `{"shapes": [
		{"type": "glass_sphere", "material": {"reflective": 0.9}},
		{"type": "plane", "material": {
			"color": [0.5, 0.25, 1],
			"shininess": 50,
			"pattern": {"type": "checkered", "a": [1, 1, 1], "b": [0, 0, 0],
				"transform": [{"op": "scale", "args": [0.5, 0.5, 0.5]}]}
		}},
		{"type": "sphere", "material": {"pattern": {"type": "test"}}}
	]}`

	s, err := ParseScene(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	glass := material.NewGlass()
	glass.Reflective = 0.9
	if diff := cmp.Diff(glass, s.World.Registry.At(0).Data().Material, cmpopts.IgnoreUnexported(material.Pattern{})); diff != "" {
		t.Errorf("Unexpected glass material (-want +got):\n%s", diff)
	}

	floor := s.World.Registry.At(1).Data().Material
	if floor.Color != core.NewColor(0.5, 0.25, 1) || floor.Shininess != 50 || floor.Diffuse != 0.9 {
		t.Errorf("Unexpected floor material %+v", floor)
	}
	if floor.Pattern == nil || floor.Pattern.Kind != material.Checkered {
		t.Fatalf("Expected a checkered pattern, got %+v", floor.Pattern)
	}
	if got := floor.Pattern.AtObject(core.Identity(), core.Point(0.6, 0, 0)); got != core.Black() {
		t.Errorf("Expected the scaled checker to flip at x=0.5, got %v", got)
	}

	if p := s.World.Registry.At(2).Data().Material.Pattern; p == nil || p.Kind != material.Test {
		t.Errorf("Expected a test pattern, got %+v", p)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool // wraps ErrInvalidScene
	}{
		{"malformed json", `{"shapes": [`, false},
		{"unknown field", `{"shapez": []}`, false},
		{"unknown shape", `{"shapes": [{"type": "cube"}]}`, true},
		{"unknown transform op", `{"shapes": [{"type": "sphere", "transform": [{"op": "spin", "args": [1]}]}]}`, true},
		{"wrong arity", `{"shapes": [{"type": "sphere", "transform": [{"op": "scale", "args": [1, 2]}]}]}`, true},
		{"singular transform", `{"shapes": [{"type": "sphere", "transform": [{"op": "scale", "args": [0, 1, 1]}]}]}`, true},
		{"short color", `{"shapes": [{"type": "sphere", "material": {"color": [1, 0]}}]}`, true},
		{"negative diffuse", `{"shapes": [{"type": "sphere", "material": {"diffuse": -1}}]}`, true},
		{"zero refractive index", `{"shapes": [{"type": "sphere", "material": {"refractive_index": 0}}]}`, true},
		{"unknown pattern", `{"shapes": [{"type": "sphere", "material": {"pattern": {"type": "plaid"}}}]}`, true},
		{"pattern missing color", `{"shapes": [{"type": "sphere", "material": {"pattern": {"type": "ring", "a": [1, 1, 1]}}}]}`, true},
		{"light without position", `{"light": {"intensity": [1, 1, 1]}}`, true},
		{"negative width", `{"camera": {"width": -1}}`, true},
		{"short camera from", `{"camera": {"from": [0, 1]}}`, true},
		{"eye on target", `{"camera": {"from": [0, 1, 0], "to": [0, 1, 0]}}`, true},
		{"up along line of sight", `{"camera": {"from": [0, 5, 0], "to": [0, 0, 0], "up": [0, 1, 0]}}`, true},
		{"straight angle fov", `{"camera": {"fov": 3.141592653589793}}`, true},
		{"fov past straight angle", `{"camera": {"fov": 4}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("Expected an error")
			}
			if got := xerrors.Is(err, ErrInvalidScene); got != tt.invalid {
				t.Errorf("xerrors.Is(err, ErrInvalidScene) = %v, expected %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestValidateCamera(t *testing.T) {
	base := scene.DefaultCameraConfig()

	tests := []struct {
		name   string
		modify func(c *scene.CameraConfig)
		valid  bool
	}{
		{"default", func(c *scene.CameraConfig) {}, true},
		{"looking straight down with a z up", func(c *scene.CameraConfig) {
			c.From, c.To, c.Up = core.Point(0, 5, 0), core.Point(0, 0, 0), core.Vector(0, 0, 1)
		}, true},
		{"eye on target", func(c *scene.CameraConfig) { c.To = c.From }, false},
		{"up parallel to line of sight", func(c *scene.CameraConfig) {
			c.From, c.To, c.Up = core.Point(0, 5, 0), core.Point(0, 0, 0), core.Vector(0, 1, 0)
		}, false},
		{"zero up", func(c *scene.CameraConfig) { c.Up = core.Vector(0, 0, 0) }, false},
		{"zero width", func(c *scene.CameraConfig) { c.Width = 0 }, false},
		{"zero fov", func(c *scene.CameraConfig) { c.FieldOfView = 0 }, false},
		{"fov of pi", func(c *scene.CameraConfig) { c.FieldOfView = math.Pi }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.modify(&config)
			err := ValidateCamera(config)
			if tt.valid {
				if err != nil {
					t.Errorf("Expected a valid camera, got %v", err)
				}
				return
			}
			if !xerrors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}
