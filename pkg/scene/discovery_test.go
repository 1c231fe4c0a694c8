package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b.json":      `{"name": "Bravo", "description": "second", "shapes": []}`,
		"a.json":      `{"name": "Alpha", "shapes": []}`,
		"plain.json":  `{"shapes": []}`,
		"broken.json": `{"name": `,
		"notes.txt":   `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}

	want := []SceneInfo{
		{ID: "a", DisplayName: "Alpha", Type: "file", FilePath: filepath.Join(dir, "a.json")},
		{ID: "b", DisplayName: "Bravo", Description: "second", Type: "file", FilePath: filepath.Join(dir, "b.json")},
		{ID: "plain", DisplayName: "plain", Type: "file", FilePath: filepath.Join(dir, "plain.json")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unexpected scenes (-want +got):\n%s", diff)
	}
}

func TestListScenes_MissingDirectory(t *testing.T) {
	got, err := ListScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected a missing directory to be ignored, got %v", err)
	}
	if len(got) != len(BuiltinNames()) {
		t.Errorf("Expected only the %d presets, got %d scenes", len(BuiltinNames()), len(got))
	}
	for _, info := range got {
		if info.Type != "builtin" || info.Description == "" {
			t.Errorf("Unexpected preset info %+v", info)
		}
	}
}
