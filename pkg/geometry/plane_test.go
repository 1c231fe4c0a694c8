package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_NormalIsConstant(t *testing.T) {
	p := NewPlane()
	for _, point := range []core.Tuple{core.Point(0, 0, 0), core.Point(10, 0, -10), core.Point(-5, 0, 150)} {
		if got := p.LocalNormalAt(point); got != core.Vector(0, 1, 0) {
			t.Errorf("LocalNormalAt(%v) = %v, expected (0, 1, 0)", point, got)
		}
	}
}

func TestPlane_LocalIntersect(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected []float64
	}{
		{"parallel ray", core.NewRay(core.Point(0, 10, 0), core.Vector(0, 0, 1)), nil},
		{"coplanar ray", core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1)), nil},
		{"nearly parallel ray", core.NewRay(core.Point(0, 1, 0), core.Vector(1, 1e-13, 0)), nil},
		{"from above", core.NewRay(core.Point(0, 1, 0), core.Vector(0, -1, 0)), []float64{1}},
		{"from below", core.NewRay(core.Point(0, -1, 0), core.Vector(0, 1, 0)), []float64{1}},
		{"behind the origin", core.NewRay(core.Point(0, 2, 0), core.Vector(0, 1, 0)), []float64{-2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPlane().LocalIntersect(tt.ray)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestPlane_TransformedIntersect(t *testing.T) {
	p := NewPlane()
	p.SetTransform(core.Translation(0, -1, 0))

	xs := Intersect(p, core.NewRay(core.Point(0, 1, 0), core.Vector(0, -1, 0)))
	if len(xs) != 1 || xs[0].T != 2 {
		t.Errorf("Expected one intersection at t=2, got %v", xs)
	}
}
