package loaders

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every error caused by the contents of a scene
// document, as opposed to I/O or syntax errors
var ErrInvalidScene = xerrors.New("invalid scene")

// SceneFile is the JSON document accepted by ParseScene
type SceneFile struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Camera      *CameraBlock `json:"camera"`
	Light       *LightBlock  `json:"light"`
	Shapes      []ShapeBlock `json:"shapes"`
}

// CameraBlock overrides fields of scene.DefaultCameraConfig. Omitted fields
// keep their defaults.
type CameraBlock struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FieldOfView float64   `json:"fov"` // Radians
	From        []float64 `json:"from"`
	To          []float64 `json:"to"`
	Up          []float64 `json:"up"`
}

// LightBlock is a point light. A scene without a light renders black.
type LightBlock struct {
	Position  []float64 `json:"position"`
	Intensity []float64 `json:"intensity"`
}

// ShapeBlock describes one shape. Type is "sphere", "glass_sphere" or "plane".
type ShapeBlock struct {
	Type      string          `json:"type"`
	Transform []TransformStep `json:"transform"`
	Material  *MaterialBlock  `json:"material"`
}

// TransformStep is one transformation. Steps apply in listed order.
//
//	{"op": "translate", "args": [x, y, z]}
//	{"op": "scale", "args": [x, y, z]}
//	{"op": "rotate_x", "args": [radians]}  (also rotate_y, rotate_z)
//	{"op": "shear", "args": [xy, xz, yx, yz, zx, zy]}
type TransformStep struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args"`
}

// MaterialBlock overrides fields of the shape's starting material
type MaterialBlock struct {
	Color           []float64     `json:"color"`
	Ambient         *float64      `json:"ambient"`
	Diffuse         *float64      `json:"diffuse"`
	Specular        *float64      `json:"specular"`
	Shininess       *float64      `json:"shininess"`
	Reflective      *float64      `json:"reflective"`
	Transparency    *float64      `json:"transparency"`
	RefractiveIndex *float64      `json:"refractive_index"`
	Pattern         *PatternBlock `json:"pattern"`
}

// PatternBlock is a two-color pattern. Type is "stripe", "ring", "gradient",
// "checkered" or "test".
type PatternBlock struct {
	Type      string          `json:"type"`
	A         []float64       `json:"a"`
	B         []float64       `json:"b"`
	Transform []TransformStep `json:"transform"`
}

var transformArity = map[string]int{
	"translate": 3,
	"scale":     3,
	"rotate_x":  1,
	"rotate_y":  1,
	"rotate_z":  1,
	"shear":     6,
}

// LoadSceneFile reads a JSON scene file. The scene is named after the file
// when the document has no name.
func LoadSceneFile(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("while opening scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseScene(f)
	if err != nil {
		return nil, xerrors.Errorf("while loading %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene decodes a JSON scene document and builds its world
func ParseScene(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc SceneFile
	if err := dec.Decode(&doc); err != nil {
		return nil, xerrors.Errorf("while decoding scene: %w", err)
	}
	return doc.Build()
}

// Build converts the document into a scene
func (doc *SceneFile) Build() (*scene.Scene, error) {
	cameraConfig := scene.DefaultCameraConfig()
	if doc.Camera != nil {
		override, err := doc.Camera.config()
		if err != nil {
			return nil, xerrors.Errorf("while reading camera: %w", err)
		}
		cameraConfig = scene.MergeCameraConfig(cameraConfig, override)
	}
	if err := ValidateCamera(cameraConfig); err != nil {
		return nil, xerrors.Errorf("while reading camera: %w", err)
	}

	world := scene.NewWorld()
	if doc.Light != nil {
		light, err := doc.Light.build()
		if err != nil {
			return nil, xerrors.Errorf("while reading light: %w", err)
		}
		world.Light = light
	}

	for i, block := range doc.Shapes {
		shape, err := block.build()
		if err != nil {
			return nil, xerrors.Errorf("while reading shape %d: %w", i, err)
		}
		world.Add(shape)
	}

	return &scene.Scene{
		Name:         doc.Name,
		World:        world,
		CameraConfig: cameraConfig,
	}, nil
}

func (c *CameraBlock) config() (scene.CameraConfig, error) {
	if c.Width < 0 || c.Height < 0 {
		return scene.CameraConfig{}, xerrors.Errorf("negative image size %dx%d: %w", c.Width, c.Height, ErrInvalidScene)
	}
	if c.FieldOfView < 0 || c.FieldOfView >= math.Pi {
		return scene.CameraConfig{}, xerrors.Errorf("field of view %v outside [0, pi): %w", c.FieldOfView, ErrInvalidScene)
	}

	config := scene.CameraConfig{
		Width:       c.Width,
		Height:      c.Height,
		FieldOfView: c.FieldOfView,
	}
	var err error
	if config.From, err = optionalTuple("from", c.From, core.Point); err != nil {
		return scene.CameraConfig{}, err
	}
	if config.To, err = optionalTuple("to", c.To, core.Point); err != nil {
		return scene.CameraConfig{}, err
	}
	if config.Up, err = optionalTuple("up", c.Up, core.Vector); err != nil {
		return scene.CameraConfig{}, err
	}
	return config, nil
}

// ValidateCamera reports whether a fully merged camera configuration can be
// turned into a camera. The eye must not sit on the point it looks at and up
// must not be parallel to the line of sight, otherwise the view transform is
// singular.
func ValidateCamera(c scene.CameraConfig) error {
	if c.Width <= 0 || c.Height <= 0 {
		return xerrors.Errorf("image size %dx%d is not positive: %w", c.Width, c.Height, ErrInvalidScene)
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= math.Pi {
		return xerrors.Errorf("field of view %v outside (0, pi): %w", c.FieldOfView, ErrInvalidScene)
	}
	if !c.ViewTransform().IsInvertible() {
		return xerrors.Errorf("camera from %v to %v with up %v has no view transform: %w", c.From, c.To, c.Up, ErrInvalidScene)
	}
	return nil
}

func (l *LightBlock) build() (*lights.PointLight, error) {
	position, err := triple("position", l.Position)
	if err != nil {
		return nil, err
	}
	intensity := core.White()
	if l.Intensity != nil {
		if intensity, err = color("intensity", l.Intensity); err != nil {
			return nil, err
		}
	}
	return lights.NewPointLight(core.Point(position[0], position[1], position[2]), intensity), nil
}

func (b *ShapeBlock) build() (geometry.Shape, error) {
	var shape geometry.Shape
	switch b.Type {
	case "sphere":
		shape = geometry.NewSphere()
	case "glass_sphere":
		shape = geometry.NewGlassSphere()
	case "plane":
		shape = geometry.NewPlane()
	default:
		return nil, xerrors.Errorf("unknown shape type %q: %w", b.Type, ErrInvalidScene)
	}

	transform, err := buildTransform(b.Transform)
	if err != nil {
		return nil, err
	}
	shape.Data().SetTransform(transform)

	if b.Material != nil {
		m, err := b.Material.apply(shape.Data().Material)
		if err != nil {
			return nil, xerrors.Errorf("while reading material: %w", err)
		}
		shape.Data().Material = m
	}
	return shape, nil
}

func (b *MaterialBlock) apply(m material.Material) (material.Material, error) {
	if b.Color != nil {
		c, err := color("color", b.Color)
		if err != nil {
			return m, err
		}
		m.Color = c
	}

	scalars := []struct {
		name  string
		value *float64
		dst   *float64
	}{
		{"ambient", b.Ambient, &m.Ambient},
		{"diffuse", b.Diffuse, &m.Diffuse},
		{"specular", b.Specular, &m.Specular},
		{"shininess", b.Shininess, &m.Shininess},
		{"reflective", b.Reflective, &m.Reflective},
		{"transparency", b.Transparency, &m.Transparency},
		{"refractive_index", b.RefractiveIndex, &m.RefractiveIndex},
	}
	for _, s := range scalars {
		if s.value == nil {
			continue
		}
		if *s.value < 0 {
			return m, xerrors.Errorf("negative %s %v: %w", s.name, *s.value, ErrInvalidScene)
		}
		*s.dst = *s.value
	}
	if m.RefractiveIndex == 0 {
		return m, xerrors.Errorf("refractive_index must be positive: %w", ErrInvalidScene)
	}

	if b.Pattern != nil {
		p, err := b.Pattern.build()
		if err != nil {
			return m, xerrors.Errorf("while reading pattern: %w", err)
		}
		m = m.WithPattern(p)
	}
	return m, nil
}

func (b *PatternBlock) build() (material.Pattern, error) {
	kind, ok := material.ParsePatternKind(b.Type)
	if !ok {
		return material.Pattern{}, xerrors.Errorf("unknown pattern type %q: %w", b.Type, ErrInvalidScene)
	}

	var p material.Pattern
	if kind == material.Test {
		p = material.NewTestPattern()
	} else {
		a, err := color("a", b.A)
		if err != nil {
			return p, err
		}
		bc, err := color("b", b.B)
		if err != nil {
			return p, err
		}
		p = material.NewPattern(kind, a, bc)
	}

	transform, err := buildTransform(b.Transform)
	if err != nil {
		return p, err
	}
	p.SetTransform(transform)
	return p, nil
}

// buildTransform chains steps so the first listed is applied first
func buildTransform(steps []TransformStep) (core.Matrix, error) {
	matrices := make([]core.Matrix, 0, len(steps))
	for i, step := range steps {
		arity, ok := transformArity[step.Op]
		if !ok {
			return core.Matrix{}, xerrors.Errorf("transform step %d: unknown op %q: %w", i, step.Op, ErrInvalidScene)
		}
		if len(step.Args) != arity {
			return core.Matrix{}, xerrors.Errorf("transform step %d: %s takes %d args, got %d: %w", i, step.Op, arity, len(step.Args), ErrInvalidScene)
		}

		a := step.Args
		var m core.Matrix
		switch step.Op {
		case "translate":
			m = core.Translation(a[0], a[1], a[2])
		case "scale":
			m = core.Scaling(a[0], a[1], a[2])
		case "rotate_x":
			m = core.RotationX(a[0])
		case "rotate_y":
			m = core.RotationY(a[0])
		case "rotate_z":
			m = core.RotationZ(a[0])
		case "shear":
			m = core.Shearing(a[0], a[1], a[2], a[3], a[4], a[5])
		}
		matrices = append(matrices, m)
	}

	transform := core.Chain(matrices...)
	if !transform.IsInvertible() {
		return core.Matrix{}, xerrors.Errorf("transform is not invertible: %w", ErrInvalidScene)
	}
	return transform, nil
}

func triple(field string, v []float64) ([3]float64, error) {
	if len(v) != 3 {
		return [3]float64{}, xerrors.Errorf("%s needs 3 components, got %d: %w", field, len(v), ErrInvalidScene)
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}

func color(field string, v []float64) (core.Color, error) {
	c, err := triple(field, v)
	if err != nil {
		return core.Color{}, err
	}
	return core.NewColor(c[0], c[1], c[2]), nil
}

// optionalTuple returns the zero tuple for an omitted field so that
// scene.MergeCameraConfig keeps the default
func optionalTuple(field string, v []float64, construct func(x, y, z float64) core.Tuple) (core.Tuple, error) {
	if v == nil {
		return core.Tuple{}, nil
	}
	c, err := triple(field, v)
	if err != nil {
		return core.Tuple{}, err
	}
	return construct(c[0], c[1], c[2]), nil
}
