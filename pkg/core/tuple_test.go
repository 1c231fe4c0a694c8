package core

import (
	"math"
	"testing"
)

func TestTuple_PointAndVector(t *testing.T) {
	p := Point(4.3, -4.2, 3.1)
	if !p.IsPoint() || p.IsVector() {
		t.Errorf("Expected %v to be a point", p)
	}

	v := Vector(4.3, -4.2, 3.1)
	if !v.IsVector() || v.IsPoint() {
		t.Errorf("Expected %v to be a vector", v)
	}
}

func TestTuple_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Tuple
		expected Tuple
	}{
		{
			name:     "point plus vector is a point",
			got:      Point(3, -2, 5).Add(Vector(-2, 3, 1)),
			expected: Point(1, 1, 6),
		},
		{
			name:     "point minus point is a vector",
			got:      Point(3, 2, 1).Subtract(Point(5, 6, 7)),
			expected: Vector(-2, -4, -6),
		},
		{
			name:     "point minus vector is a point",
			got:      Point(3, 2, 1).Subtract(Vector(5, 6, 7)),
			expected: Point(-2, -4, -6),
		},
		{
			name:     "vector minus vector is a vector",
			got:      Vector(3, 2, 1).Subtract(Vector(5, 6, 7)),
			expected: Vector(-2, -4, -6),
		},
		{
			name:     "negation",
			got:      Tuple{1, -2, 3, -4}.Negate(),
			expected: Tuple{-1, 2, -3, 4},
		},
		{
			name:     "scalar multiplication",
			got:      Tuple{1, -2, 3, -4}.Multiply(3.5),
			expected: Tuple{3.5, -7, 10.5, -14},
		},
		{
			name:     "scalar division",
			got:      Tuple{1, -2, 3, -4}.Divide(2),
			expected: Tuple{0.5, -1, 1.5, -2},
		},
		{
			name:     "cross product",
			got:      Vector(1, 2, 3).Cross(Vector(2, 3, 4)),
			expected: Vector(-1, 2, -1),
		},
		{
			name:     "reversed cross product",
			got:      Vector(2, 3, 4).Cross(Vector(1, 2, 3)),
			expected: Vector(1, -2, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestTuple_Magnitude(t *testing.T) {
	tests := []struct {
		v        Tuple
		expected float64
	}{
		{Vector(1, 0, 0), 1},
		{Vector(0, 1, 0), 1},
		{Vector(0, 0, 1), 1},
		{Vector(1, 2, 3), math.Sqrt(14)},
		{Vector(-1, -2, -3), math.Sqrt(14)},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Magnitude(%v) = %f, expected %f", tt.v, got, tt.expected)
		}
	}
}

func TestTuple_NormalizeHasUnitLength(t *testing.T) {
	vectors := []Tuple{
		Vector(4, 0, 0),
		Vector(1, 2, 3),
		Vector(-0.001, 2000, 7),
		Vector(1e-8, -1e-8, 3e-8),
	}

	for _, v := range vectors {
		n := v.Normalize()
		if math.Abs(n.Magnitude()-1) > 1e-12 {
			t.Errorf("Normalize(%v) has magnitude %f, expected 1", v, n.Magnitude())
		}
		if !n.IsVector() {
			t.Errorf("Normalize(%v) = %v is no longer a vector", v, n)
		}
	}

	if got := Vector(4, 0, 0).Normalize(); !got.ApproxEqual(Vector(1, 0, 0)) {
		t.Errorf("Expected (1, 0, 0), got %v", got)
	}
}

func TestTuple_Dot(t *testing.T) {
	if got := Vector(1, 2, 3).Dot(Vector(2, 3, 4)); got != 20 {
		t.Errorf("Expected dot product 20, got %f", got)
	}
}

func TestTuple_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Tuple
		normal   Tuple
		expected Tuple
	}{
		{
			name:     "approaching at 45 degrees",
			v:        Vector(1, -1, 0),
			normal:   Vector(0, 1, 0),
			expected: Vector(1, 1, 0),
		},
		{
			name:     "off a slanted surface",
			v:        Vector(0, -1, 0),
			normal:   Vector(math.Sqrt2/2, math.Sqrt2/2, 0),
			expected: Vector(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Reflect(tt.normal); !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestColor_Operations(t *testing.T) {
	a := NewColor(0.9, 0.6, 0.75)
	b := NewColor(0.7, 0.1, 0.25)

	if got := a.Add(b); !got.ApproxEqual(NewColor(1.6, 0.7, 1.0)) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); !got.ApproxEqual(NewColor(0.2, 0.5, 0.5)) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := NewColor(0.2, 0.3, 0.4).Multiply(2); !got.ApproxEqual(NewColor(0.4, 0.6, 0.8)) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := NewColor(1, 0.2, 0.4).Hadamard(NewColor(0.9, 1, 0.1)); !got.ApproxEqual(NewColor(0.9, 0.2, 0.04)) {
		t.Errorf("Hadamard: got %v", got)
	}
	if got := NewColor(-0.5, 0.5, 1.5).Clamp(0, 1); got != NewColor(0, 0.5, 1) {
		t.Errorf("Clamp: got %v", got)
	}
}
