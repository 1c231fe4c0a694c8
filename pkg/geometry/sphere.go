package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere is a unit sphere centered at the object-space origin
type Sphere struct {
	ShapeData
}

// NewSphere creates a new unit sphere with the default material
func NewSphere() *Sphere {
	return &Sphere{ShapeData: NewShapeData()}
}

// NewGlassSphere creates a unit sphere that is fully transparent with a
// refractive index of 1.5
func NewGlassSphere() *Sphere {
	s := NewSphere()
	s.Material = material.NewGlass()
	return s
}

// Data implements Shape
func (s *Sphere) Data() *ShapeData {
	return &s.ShapeData
}

// LocalIntersect solves |o + td|² = 1 for t
func (s *Sphere) LocalIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []float64{t1, t2}
}

// LocalNormalAt points from the center through the surface point
func (s *Sphere) LocalNormalAt(point core.Tuple) core.Tuple {
	return point.Subtract(core.Point(0, 0, 0))
}
