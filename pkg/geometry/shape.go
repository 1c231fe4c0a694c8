package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is the capability contract every kind of geometry implements.
// Local methods work in object space; Intersect and NormalAt handle the
// world/object conversion for all shapes.
type Shape interface {
	// LocalIntersect returns the ray parameters where an object-space ray
	// meets the surface, in ascending order
	LocalIntersect(ray core.Ray) []float64
	// LocalNormalAt returns the object-space normal at an object-space point
	LocalNormalAt(point core.Tuple) core.Tuple
	// Data returns the state shared by all shapes
	Data() *ShapeData
}

// ShapeData holds the transform, material and registry id common to all shapes
type ShapeData struct {
	Material material.Material

	id         int
	registered bool
	transform  core.Matrix
	inverse    core.Matrix
}

// NewShapeData creates shape data with an identity transform and the default material
func NewShapeData() ShapeData {
	return ShapeData{
		Material:  material.DefaultMaterial(),
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// ID returns the id assigned at registration. Unregistered shapes report -1.
func (d *ShapeData) ID() int {
	if !d.registered {
		return -1
	}
	return d.id
}

// SetTransform replaces the object-to-world transform and recomputes the
// cached inverse. It panics if m is singular.
func (d *ShapeData) SetTransform(m core.Matrix) {
	d.transform = m
	d.inverse = m.Inverse()
}

// Transform returns the object-to-world transform
func (d *ShapeData) Transform() core.Matrix {
	return d.transform
}

// InverseTransform returns the cached world-to-object transform
func (d *ShapeData) InverseTransform() core.Matrix {
	return d.inverse
}

// Intersect transforms a world-space ray into the shape's object space and
// tags each local hit with the shape's id
func Intersect(s Shape, ray core.Ray) []Intersection {
	data := s.Data()
	ts := s.LocalIntersect(ray.Transform(data.inverse))
	if len(ts) == 0 {
		return nil
	}

	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, ObjectID: data.ID()}
	}
	return xs
}

// NormalAt returns the world-space unit normal at a world-space point.
// The local normal goes back through the transpose of the inverse so that
// non-uniform scaling keeps it perpendicular to the surface.
func NormalAt(s Shape, worldPoint core.Tuple) core.Tuple {
	inverse := s.Data().inverse
	objectPoint := inverse.MultiplyTuple(worldPoint)
	objectNormal := s.LocalNormalAt(objectPoint)

	worldNormal := inverse.Transpose().MultiplyTuple(objectNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}
