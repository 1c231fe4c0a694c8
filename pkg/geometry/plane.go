package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite object-space x-z plane (y = 0)
type Plane struct {
	ShapeData
}

// NewPlane creates a new plane with the default material
func NewPlane() *Plane {
	return &Plane{ShapeData: NewShapeData()}
}

// Data implements Shape
func (p *Plane) Data() *ShapeData {
	return &p.ShapeData
}

// LocalIntersect returns the single crossing of y = 0. Rays with a
// near-zero y direction are treated as parallel and miss.
func (p *Plane) LocalIntersect(ray core.Ray) []float64 {
	if math.Abs(ray.Direction.Y) < core.ShadowEpsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// LocalNormalAt is constant: the plane faces +y everywhere
func (p *Plane) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}
