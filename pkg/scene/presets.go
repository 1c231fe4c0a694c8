package scene

import (
	"math"
	"sort"

	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// builtinScenes maps preset names to their constructors
var builtinScenes = map[string]struct {
	description string
	build       func() *World
}{
	"default": {"Two concentric spheres, the reference world for shading tests", NewDefaultWorld},
	"test":    {"Three spheres in a room built from flattened spheres", NewTestWorld},
	"pattern": {"Patterned planes and spheres with reflections", NewPatternWorld},
	"glass":   {"A glass sphere with an air bubble over a checkered floor", NewGlassWorld},
}

// BuiltinNames returns the preset names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named preset scene. Camera overrides are merged over
// DefaultCameraConfig.
func Lookup(name string, cameraOverrides ...CameraConfig) (*Scene, error) {
	preset, ok := builtinScenes[name]
	if !ok {
		return nil, xerrors.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}

	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:         name,
		World:        preset.build(),
		CameraConfig: cameraConfig,
	}, nil
}

// NewDefaultWorld creates the reference world: a light at (-10, 10, -10), a
// unit sphere with a green-tinted material and a half-size sphere inside it
func NewDefaultWorld() *World {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.Point(-10, 10, -10), core.White())

	outer := geometry.NewSphere()
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2
	w.Add(outer)

	inner := geometry.NewSphere()
	inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))
	w.Add(inner)

	return w
}

// matteWall is a sphere squashed into a slab
func matteWall(transform core.Matrix) *geometry.Sphere {
	s := geometry.NewSphere()
	s.SetTransform(transform)
	s.Material.Color = core.NewColor(1, 0.9, 0.9)
	s.Material.Specular = 0
	return s
}

// NewTestWorld creates three spheres on a floor in front of two walls, all
// made of spheres
func NewTestWorld() *World {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.Point(-10, 10, -10), core.White())

	slab := core.Scaling(10, 0.01, 10)
	w.Add(matteWall(slab))
	w.Add(matteWall(core.Chain(slab, core.RotationX(math.Pi/2), core.RotationY(-math.Pi/4), core.Translation(0, 0, 5))))
	w.Add(matteWall(core.Chain(slab, core.RotationX(math.Pi/2), core.RotationY(math.Pi/4), core.Translation(0, 0, 5))))

	middle := geometry.NewSphere()
	middle.SetTransform(core.Translation(-0.5, 1, 0.5))
	middle.Material.Color = core.NewColor(0.1, 1, 0.5)
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3
	w.Add(middle)

	right := geometry.NewSphere()
	right.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)))
	right.Material.Color = core.NewColor(0.5, 1, 0.1)
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3
	w.Add(right)

	left := geometry.NewSphere()
	left.SetTransform(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)))
	left.Material.Color = core.NewColor(1, 0.8, 0.1)
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.3
	w.Add(left)

	return w
}

// NewPatternWorld creates a ringed reflective floor, a gradient backdrop and
// spheres using each pattern kind
func NewPatternWorld() *World {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.Point(-10, 5, -10), core.White())

	floor := geometry.NewPlane()
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.2
	rings := material.NewRingPattern(core.NewColor(0.8, 0.8, 0.8), core.NewColor(0.2, 0.2, 0.2))
	rings.SetTransform(core.Chain(core.RotationY(math.Pi/2), core.Scaling(0.3, 0.3, 0.3)))
	floor.Material = floor.Material.WithPattern(rings)
	w.Add(floor)

	wall := geometry.NewPlane()
	wall.SetTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 5)))
	wall.Material.Color = core.NewColor(1, 0.9, 0.9)
	wall.Material.Specular = 0
	gradient := material.NewGradientPattern(core.NewColor(1, 0, 0), core.NewColor(0, 0, 1))
	gradient.SetTransform(core.Chain(core.RotationZ(math.Pi/2), core.Scaling(7, 7, 7)))
	wall.Material = wall.Material.WithPattern(gradient)
	w.Add(wall)

	middle := geometry.NewSphere()
	middle.SetTransform(core.Translation(-0.5, 1, 0.5))
	middle.Material.Color = core.NewColor(0.1, 1, 0.5)
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3
	middle.Material.Reflective = 0.2
	stripes := material.NewStripePattern(core.NewColor(0.1, 0.3, 0.9), core.White())
	stripes.SetTransform(core.Chain(core.RotationZ(math.Pi/3), core.RotationY(math.Pi/6), core.Scaling(0.2, 0.2, 0.2)))
	middle.Material = middle.Material.WithPattern(stripes)
	w.Add(middle)

	right := geometry.NewSphere()
	right.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)))
	right.Material.Color = core.NewColor(0.5, 1, 0.1)
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3
	checks := material.NewCheckeredPattern(core.NewColor(0.3, 0.7, 0.2), core.White())
	checks.SetTransform(core.Scaling(0.3, 0.3, 0.3))
	right.Material = right.Material.WithPattern(checks)
	w.Add(right)

	left := geometry.NewSphere()
	left.SetTransform(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)))
	left.Material.Color = core.NewColor(1, 0.8, 0.1)
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.3
	left.Material.Reflective = 0.5
	w.Add(left)

	// Partially sunk into the floor
	embedded := geometry.NewSphere()
	embedded.SetTransform(core.Chain(core.Scaling(0.6, 0.6, 0.6), core.Translation(1, -0.2, -1)))
	embedded.Material.Color = core.NewColor(0.8, 0.2, 0.8)
	embedded.Material.Diffuse = 0.7
	embedded.Material.Specular = 0.3
	w.Add(embedded)

	return w
}

// NewGlassWorld creates a hollow glass sphere over a checkered floor in front
// of a striped wall
func NewGlassWorld() *World {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.Point(-4.9, 4.9, -1), core.White())

	floor := geometry.NewPlane()
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.1
	floor.Material = floor.Material.WithPattern(
		material.NewCheckeredPattern(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65)))
	w.Add(floor)

	wall := geometry.NewPlane()
	wall.SetTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 10)))
	wall.Material.Specular = 0
	stripes := material.NewStripePattern(core.NewColor(0.45, 0.45, 0.45), core.NewColor(0.55, 0.55, 0.55))
	stripes.SetTransform(core.RotationY(math.Pi / 2))
	wall.Material = wall.Material.WithPattern(stripes)
	w.Add(wall)

	glass := geometry.NewGlassSphere()
	glass.SetTransform(core.Translation(0, 1, 0.5))
	glass.Material.Color = core.Black()
	glass.Material.Ambient = 0
	glass.Material.Diffuse = 0
	glass.Material.Specular = 0.9
	glass.Material.Shininess = 300
	glass.Material.Reflective = 0.9
	w.Add(glass)

	bubble := geometry.NewGlassSphere()
	bubble.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(0, 1, 0.5)))
	bubble.Material.Color = core.Black()
	bubble.Material.Ambient = 0
	bubble.Material.Diffuse = 0
	bubble.Material.Specular = 0.9
	bubble.Material.Shininess = 300
	bubble.Material.Reflective = 0.9
	bubble.Material.RefractiveIndex = 1.0000034
	w.Add(bubble)

	red := geometry.NewSphere()
	red.SetTransform(core.Chain(core.Scaling(0.4, 0.4, 0.4), core.Translation(-1.8, 0.4, 2.5)))
	red.Material.Color = core.NewColor(0.8, 0.1, 0.1)
	red.Material.Reflective = 0.1
	w.Add(red)

	return w
}
