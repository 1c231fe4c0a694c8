package core

import "math"

const (
	// Epsilon is the tolerance used for approximate equality of tuples,
	// colors and matrices.
	Epsilon = 1e-5

	// machineEpsilon is the gap between 1.0 and the next float64.
	machineEpsilon = 0x1p-52

	// ShadowEpsilon offsets secondary-ray origins off a surface and is the
	// threshold below which a ray counts as parallel to a plane.
	ShadowEpsilon = 50000 * machineEpsilon
)

// ApproxEqual reports whether a and b differ by less than Epsilon
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
