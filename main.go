package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	scenesDir  string
	outputPath string
	camera     scene.CameraConfig
	render     renderer.RenderConfig
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Preset name, scene file ID in -scenes-dir, or path to a .json scene file")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory of JSON scene files")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	fov := flag.Float64("fov", 0, "Field of view in degrees (0 = scene default)")
	from := flag.String("from", "", "Eye position as x,y,z")
	to := flag.String("to", "", "Point looked at as x,y,z")
	up := flag.String("up", "", "Up direction as x,y,z")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultRenderConfig().TileSize, "Tile size in pixels")
	maxBounces := flag.Int("bounces", scene.MaxBounces, "Reflection/refraction depth")
	out := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	list := flag.Bool("list", false, "List available scenes and exit")
	flag.Parse()
	defer glog.Flush()

	if *list {
		scenes, err := scene.ListScenes(*scenesDir)
		if err != nil {
			glog.Exitf("Error listing scenes: %v", err)
		}
		for _, info := range scenes {
			fmt.Printf("  %-16s %-8s %s\n", info.ID, info.Type, info.Description)
		}
		return
	}

	camera, err := cameraOverrides(*width, *height, *fov, *from, *to, *up)
	if err != nil {
		glog.Exitf("Invalid camera flags: %v", err)
	}

	opts := options{
		sceneType:  *sceneType,
		scenesDir:  *scenesDir,
		outputPath: *out,
		camera:     camera,
		render: renderer.RenderConfig{
			TileSize:   *tileSize,
			NumWorkers: *workers,
			MaxBounces: *maxBounces,
		},
	}

	if err := renderer.RegisterMetrics(); err != nil {
		glog.Exitf("Error registering metrics: %v", err)
	}

	filename, err := run(context.Background(), opts)
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}
	glog.Infof("Render saved as %s", filename)
	fmt.Println(filename)
}

// run renders the selected scene and writes it as a PNG, returning the path
func run(ctx context.Context, opts options) (string, error) {
	selectedScene, err := createScene(opts.sceneType, opts.scenesDir, opts.camera)
	if err != nil {
		return "", err
	}
	glog.Infof("Rendering scene %q with %d shapes", selectedScene.Name, selectedScene.ShapeCount())

	camera := renderer.NewCameraFromConfig(selectedScene.CameraConfig)
	raytracer := renderer.NewRaytracer(selectedScene.World, camera, opts.render, nil)

	canvas, stats, err := raytracer.RenderParallel(ctx)
	if err != nil {
		return "", err
	}
	glog.Infof("Render completed in %v: %d pixels, %d tiles, %d black", stats.Duration, stats.TotalPixels, stats.TotalTiles, stats.BlackPixels)

	filename := opts.outputPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", sanitizeName(selectedScene.Name), fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", xerrors.Errorf("while creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", xerrors.Errorf("while creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, canvas.ToRGBA()); err != nil {
		return "", xerrors.Errorf("while encoding PNG: %w", err)
	}
	return filename, file.Close()
}

// createScene loads a .json path directly, otherwise resolves a preset or a
// scene file ID in scenesDir
func createScene(sceneType, scenesDir string, camera scene.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, xerrors.New("no scene given")
	}

	if strings.HasSuffix(sceneType, ".json") {
		s, err := loaders.LoadSceneFile(sceneType)
		if err != nil {
			return nil, err
		}
		s.CameraConfig = scene.MergeCameraConfig(s.CameraConfig, camera)
		if err := loaders.ValidateCamera(s.CameraConfig); err != nil {
			return nil, xerrors.Errorf("while applying camera flags: %w", err)
		}
		return s, nil
	}
	return loaders.ResolveScene(sceneType, scenesDir, camera)
}

// cameraOverrides builds the camera fields given on the command line. Unset
// flags stay zero so the scene's own camera is kept.
func cameraOverrides(width, height int, fovDegrees float64, from, to, up string) (scene.CameraConfig, error) {
	if width < 0 || height < 0 {
		return scene.CameraConfig{}, xerrors.Errorf("negative image size %dx%d", width, height)
	}
	if fovDegrees < 0 || fovDegrees >= 180 {
		return scene.CameraConfig{}, xerrors.Errorf("field of view must be in [0, 180), got %v", fovDegrees)
	}

	config := scene.CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: fovDegrees * math.Pi / 180,
	}

	var err error
	if config.From, err = parseTuple(from, core.Point); err != nil {
		return scene.CameraConfig{}, xerrors.Errorf("-from: %w", err)
	}
	if config.To, err = parseTuple(to, core.Point); err != nil {
		return scene.CameraConfig{}, xerrors.Errorf("-to: %w", err)
	}
	if config.Up, err = parseTuple(up, core.Vector); err != nil {
		return scene.CameraConfig{}, xerrors.Errorf("-up: %w", err)
	}
	return config, nil
}

// parseTuple parses "x,y,z". An empty string is the zero tuple.
func parseTuple(s string, construct func(x, y, z float64) core.Tuple) (core.Tuple, error) {
	if s == "" {
		return core.Tuple{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Tuple{}, xerrors.Errorf("expected x,y,z, got %q", s)
	}

	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Tuple{}, xerrors.Errorf("invalid component %q: %w", part, err)
		}
		v[i] = f
	}
	return construct(v[0], v[1], v[2]), nil
}

// sanitizeName turns a scene name into a directory name
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "scene"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
