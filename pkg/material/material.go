package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material describes how a surface responds to light. Materials are values:
// shading always works on a copy.
type Material struct {
	Color           core.Color // Base color used when no pattern is set
	Ambient         float64    // Light reflected from the environment
	Diffuse         float64    // Light reflected from a matte surface
	Specular        float64    // Intensity of the specular highlight
	Shininess       float64    // Tightness of the specular highlight
	Reflective      float64    // 0 is non-reflective, 1 is a perfect mirror
	Transparency    float64    // 0 is opaque, 1 is fully transparent
	RefractiveIndex float64    // 1.0 is vacuum
	Pattern         *Pattern   // Optional; overrides Color when set
}

// DefaultMaterial returns a white, matte, opaque material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White(),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1.0,
	}
}

// NewGlass returns the default material made fully transparent with the
// refractive index of glass
func NewGlass() Material {
	m := DefaultMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = 1.5
	return m
}

// SurfaceColor returns the material color at a world point. objectInverse is
// the inverse transform of the shape the point lies on.
func (m Material) SurfaceColor(objectInverse core.Matrix, worldPoint core.Tuple) core.Color {
	if m.Pattern == nil {
		return m.Color
	}
	return m.Pattern.AtObject(objectInverse, worldPoint)
}

// WithPattern returns a copy of the material using the given pattern
func (m Material) WithPattern(p Pattern) Material {
	m.Pattern = &p
	return m
}
