package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// MaxBounces is the default recursion budget for reflected and refracted rays
const MaxBounces = 5

// World is a registry of shapes lit by at most one point light. A world with
// no light renders black.
type World struct {
	Registry *geometry.Registry
	Light    *lights.PointLight
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{Registry: geometry.NewRegistry()}
}

// Add registers a shape with the world and returns its id
func (w *World) Add(s geometry.Shape) int {
	return w.Registry.Register(s)
}

// IntersectWorld returns every intersection of ray with the world's shapes,
// sorted by ascending t
func (w *World) IntersectWorld(ray core.Ray) []geometry.Intersection {
	var xs []geometry.Intersection
	w.Registry.Each(func(s geometry.Shape) {
		xs = append(xs, geometry.Intersect(s, ray)...)
	})
	geometry.SortIntersections(xs)
	return xs
}

// IsShadowed reports whether something lies between point and the light
func (w *World) IsShadowed(point core.Tuple) bool {
	if w.Light == nil {
		return false
	}

	direction, distance := w.Light.DirectionFrom(point)
	xs := w.IntersectWorld(core.NewRay(point, direction))
	hit, ok := geometry.Hit(xs)
	return ok && hit.T < distance
}

// ColorAt returns the color seen along ray. remaining bounds how many more
// reflected or refracted rays may be spawned.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.IntersectWorld(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return core.Black()
	}

	comps, ok := geometry.PrepareComputations(hit, ray, w.Registry, xs)
	if !ok {
		return core.Black()
	}
	return w.ShadeHit(comps, remaining)
}

// ShadeHit combines the lit surface color with reflected and refracted light.
// Surfaces that are both reflective and transparent blend the two by their
// Fresnel reflectance.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Data().Material

	// Patterns are sampled on the surface itself; only the shadow ray starts
	// from the over point
	surface := core.Black()
	if w.Light != nil {
		shadowed := w.IsShadowed(comps.OverPoint)
		surface = lights.Lighting(m, comps.Object, w.Light, comps.Point, comps.EyeV, comps.NormalV, shadowed)
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := geometry.Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the mirror reflection at the hit. It is black when
// the budget is spent or the surface is not reflective.
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Object.Data().Material.Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black()
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAt(reflectRay, remaining-1).Multiply(reflective)
}

// RefractedColor traces the transmitted ray at the hit using Snell's law. It
// is black when the budget is spent, the surface is opaque, or the ray is
// totally internally reflected.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Object.Data().Material.Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black()
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black()
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).Subtract(comps.EyeV.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(refractRay, remaining-1).Multiply(transparency)
}
