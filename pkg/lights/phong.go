package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Lighting computes the Phong ambient, diffuse and specular contributions of
// light at point. object supplies the object space for pattern lookups; nil
// means object space equals world space. The result is not clamped.
func Lighting(m material.Material, object geometry.Shape, light *PointLight, point, eyev, normalv core.Tuple, inShadow bool) core.Color {
	objectInverse := core.Identity()
	if object != nil {
		objectInverse = object.Data().InverseTransform()
	}

	// Combine the surface color with the light's color
	surface := m.SurfaceColor(objectInverse, point)
	effective := surface.Hadamard(light.Intensity)

	lightv, _ := light.DirectionFrom(point)
	ambient := effective.Multiply(m.Ambient)

	if inShadow {
		return ambient
	}

	// lightDotNormal is the cosine of the angle between the light and the
	// normal. Negative means the light is behind the surface.
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal < 0 {
		return ambient
	}
	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	// reflectDotEye is the cosine of the angle between the reflection and
	// the eye. Zero or negative means the reflection points away from the eye.
	reflectv := lightv.Negate().Reflect(normalv)
	reflectDotEye := reflectv.Dot(eyev)
	var specular core.Color
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
