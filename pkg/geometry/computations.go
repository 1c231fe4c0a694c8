package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Computations is the shading state precomputed for a single hit
type Computations struct {
	T      float64
	Object Shape

	Point      core.Tuple
	EyeV       core.Tuple
	NormalV    core.Tuple
	ReflectV   core.Tuple
	OverPoint  core.Tuple // Point nudged along the normal, origin for shadow and reflection rays
	UnderPoint core.Tuple // Point nudged against the normal, origin for refraction rays
	Inside     bool

	N1 float64 // Refractive index of the medium being left
	N2 float64 // Refractive index of the medium being entered
}

// PrepareComputations derives the shading state for hit. xs is every
// intersection along the ray in ascending order and is replayed to find the
// refractive indices either side of the hit; a nil xs replays the hit alone.
// It reports false when the hit refers to a shape that is not in the registry.
func PrepareComputations(hit Intersection, ray core.Ray, registry *Registry, xs []Intersection) (Computations, bool) {
	object, ok := registry.Get(hit.ObjectID)
	if !ok {
		return Computations{}, false
	}

	comps := Computations{
		T:      hit.T,
		Object: object,
		Point:  ray.Position(hit.T),
		EyeV:   ray.Direction.Negate(),
	}
	comps.NormalV = NormalAt(object, comps.Point)
	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}
	comps.ReflectV = ray.Direction.Reflect(comps.NormalV)

	offset := comps.NormalV.Multiply(core.ShadowEpsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)

	if xs == nil {
		xs = []Intersection{hit}
	}
	comps.N1, comps.N2 = refractiveIndices(hit, xs, registry)

	return comps, true
}

// refractiveIndices replays xs with a containment stack: a shape is pushed
// on entry and removed on the matching exit. This treats overlapping but
// disjoint transparent solids as nested.
func refractiveIndices(hit Intersection, xs []Intersection, registry *Registry) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []int

	for _, x := range xs {
		isHit := x == hit
		if isHit {
			n1 = topRefractiveIndex(containers, registry)
		}

		if i := indexOf(containers, x.ObjectID); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.ObjectID)
		}

		if isHit {
			n2 = topRefractiveIndex(containers, registry)
			break
		}
	}
	return n1, n2
}

func topRefractiveIndex(containers []int, registry *Registry) float64 {
	if len(containers) == 0 {
		return 1.0
	}
	s, ok := registry.Get(containers[len(containers)-1])
	if !ok {
		return 1.0
	}
	return s.Data().Material.RefractiveIndex
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit. Total internal
// reflection returns 1.
func Schlick(comps Computations) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := math.Pow((comps.N1-comps.N2)/(comps.N1+comps.N2), 2)
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
