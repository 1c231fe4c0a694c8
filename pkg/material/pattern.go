package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PatternKind selects how a Pattern maps points to colors
type PatternKind int

const (
	// Stripe alternates A and B by the parity of floor(x)
	Stripe PatternKind = iota
	// Ring alternates by the parity of floor(sqrt(x²+z²))
	Ring
	// Gradient blends from A to B across each unit of x
	Gradient
	// Checkered alternates by the parity of floor(x)+floor(y)+floor(z)
	Checkered
	// Test returns the pattern-space point as a color
	Test
)

var patternKindNames = map[PatternKind]string{
	Stripe:    "stripe",
	Ring:      "ring",
	Gradient:  "gradient",
	Checkered: "checkered",
	Test:      "test",
}

func (k PatternKind) String() string {
	if name, ok := patternKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// ParsePatternKind maps a lowercase name such as "stripe" to its kind
func ParsePatternKind(name string) (PatternKind, bool) {
	for kind, n := range patternKindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Pattern is a spatial color function with its own transform, independent
// of the transform of the shape it is applied to.
type Pattern struct {
	Kind PatternKind
	A, B core.Color

	transform core.Matrix
	inverse   core.Matrix
}

// NewPattern creates a pattern with an identity transform
func NewPattern(kind PatternKind, a, b core.Color) Pattern {
	return Pattern{
		Kind:      kind,
		A:         a,
		B:         b,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// NewStripePattern creates a stripe pattern alternating along x
func NewStripePattern(a, b core.Color) Pattern {
	return NewPattern(Stripe, a, b)
}

// NewRingPattern creates concentric rings in the x-z plane
func NewRingPattern(a, b core.Color) Pattern {
	return NewPattern(Ring, a, b)
}

// NewGradientPattern creates a linear gradient along x
func NewGradientPattern(a, b core.Color) Pattern {
	return NewPattern(Gradient, a, b)
}

// NewCheckeredPattern creates 3D unit checks
func NewCheckeredPattern(a, b core.Color) Pattern {
	return NewPattern(Checkered, a, b)
}

// NewTestPattern creates a pattern that returns its input coordinates
func NewTestPattern() Pattern {
	return NewPattern(Test, core.Black(), core.Black())
}

// SetTransform sets the pattern transform and caches its inverse
func (p *Pattern) SetTransform(m core.Matrix) {
	p.transform = m
	p.inverse = m.Inverse()
}

// Transform returns the pattern transform
func (p Pattern) Transform() core.Matrix {
	return p.transform
}

// At evaluates the pattern at a point already in pattern space
func (p Pattern) At(point core.Tuple) core.Color {
	switch p.Kind {
	case Stripe:
		return p.pick(int(math.Floor(point.X)))
	case Ring:
		return p.pick(int(math.Floor(math.Sqrt(point.X*point.X + point.Z*point.Z))))
	case Gradient:
		fraction := point.X - math.Floor(point.X)
		return p.A.Add(p.B.Subtract(p.A).Multiply(fraction))
	case Checkered:
		return p.pick(int(math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)))
	case Test:
		return core.NewColor(point.X, point.Y, point.Z)
	default:
		return p.A
	}
}

// AtObject evaluates the pattern at a world point lying on a shape with the
// given inverse transform: world to object space, then object to pattern space.
func (p Pattern) AtObject(objectInverse core.Matrix, worldPoint core.Tuple) core.Color {
	objectPoint := objectInverse.MultiplyTuple(worldPoint)
	patternPoint := p.inverse.MultiplyTuple(objectPoint)
	return p.At(patternPoint)
}

// pick returns A for even n and B for odd n, negative n included
func (p Pattern) pick(n int) core.Color {
	if n%2 == 0 {
		return p.A
	}
	return p.B
}
