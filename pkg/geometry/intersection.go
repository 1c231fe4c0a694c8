package geometry

import (
	"cmp"
	"slices"
)

// Intersection is a candidate hit at ray parameter T on the shape with ObjectID
type Intersection struct {
	T        float64
	ObjectID int
}

// NewIntersection creates an intersection for a registered shape
func NewIntersection(t float64, s Shape) Intersection {
	return Intersection{T: t, ObjectID: s.Data().ID()}
}

// SortIntersections orders intersections by ascending T. Equal T values keep
// their relative order.
func SortIntersections(xs []Intersection) {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the intersection with the smallest non-negative T. The input
// does not need to be sorted.
func Hit(xs []Intersection) (Intersection, bool) {
	var best Intersection
	found := false
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !found || x.T < best.T {
			best = x
			found = true
		}
	}
	return best, found
}
