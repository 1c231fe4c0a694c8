package core

import "fmt"

// Matrix is a square matrix of size 2, 3 or 4, stored row-major. Sizes below
// 4 only arise as cofactor submatrices; transforms are always 4x4.
type Matrix struct {
	size int
	m    [4][4]float64
}

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{
		size: 4,
		m: [4][4]float64{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
	}
}

// NewMatrix builds a square matrix from rows. It panics if the rows do not
// describe a square matrix of size 2, 3 or 4.
func NewMatrix(rows ...[]float64) Matrix {
	n := len(rows)
	if n < 2 || n > 4 {
		panic(fmt.Sprintf("core: unsupported matrix size %d", n))
	}
	result := Matrix{size: n}
	for r, row := range rows {
		if len(row) != n {
			panic(fmt.Sprintf("core: row %d has %d columns, want %d", r, len(row), n))
		}
		copy(result.m[r][:n], row)
	}
	return result
}

// Size returns the number of rows (and columns)
func (a Matrix) Size() int {
	return a.size
}

// At returns the element at row r, column c
func (a Matrix) At(r, c int) float64 {
	return a.m[r][c]
}

// Multiply returns the matrix product a*b
func (a Matrix) Multiply(b Matrix) Matrix {
	result := Matrix{size: a.size}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			var sum float64
			for k := 0; k < a.size; k++ {
				sum += a.m[r][k] * b.m[k][c]
			}
			result.m[r][c] = sum
		}
	}
	return result
}

// MultiplyTuple applies a 4x4 matrix to a tuple
func (a Matrix) MultiplyTuple(t Tuple) Tuple {
	m := &a.m
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose swaps rows and columns
func (a Matrix) Transpose() Matrix {
	result := Matrix{size: a.size}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			result.m[c][r] = a.m[r][c]
		}
	}
	return result
}

// Submatrix returns a copy with the given row and column removed
func (a Matrix) Submatrix(row, col int) Matrix {
	result := Matrix{size: a.size - 1}
	dr := 0
	for r := 0; r < a.size; r++ {
		if r == row {
			continue
		}
		dc := 0
		for c := 0; c < a.size; c++ {
			if c == col {
				continue
			}
			result.m[dr][dc] = a.m[r][c]
			dc++
		}
		dr++
	}
	return result
}

// Minor is the determinant of the submatrix at (row, col)
func (a Matrix) Minor(row, col int) float64 {
	return a.Submatrix(row, col).Determinant()
}

// Cofactor is the minor at (row, col), negated when row+col is odd
func (a Matrix) Cofactor(row, col int) float64 {
	minor := a.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant computes the determinant by cofactor expansion along the first row
func (a Matrix) Determinant() float64 {
	if a.size == 2 {
		return a.m[0][0]*a.m[1][1] - a.m[0][1]*a.m[1][0]
	}
	var det float64
	for c := 0; c < a.size; c++ {
		det += a.m[0][c] * a.Cofactor(0, c)
	}
	return det
}

// IsInvertible reports whether the determinant is non-zero
func (a Matrix) IsInvertible() bool {
	return a.Determinant() != 0
}

// Inverse returns the inverse matrix. A singular matrix is a construction
// error and causes a panic; use IsInvertible to check untrusted input first.
func (a Matrix) Inverse() Matrix {
	det := a.Determinant()
	if det == 0 {
		panic("core: cannot invert singular matrix")
	}
	result := Matrix{size: a.size}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			// Transposed on write: cofactor (r, c) lands at (c, r)
			result.m[c][r] = a.Cofactor(r, c) / det
		}
	}
	return result
}

// ApproxEqual compares two matrices element-wise within Epsilon
func (a Matrix) ApproxEqual(b Matrix) bool {
	if a.size != b.size {
		return false
	}
	for r := 0; r < a.size; r++ {
		for c := 0; c < a.size; c++ {
			if !ApproxEqual(a.m[r][c], b.m[r][c]) {
				return false
			}
		}
	}
	return true
}

// String formats the matrix one row per line
func (a Matrix) String() string {
	s := ""
	for r := 0; r < a.size; r++ {
		s += fmt.Sprint(a.m[r][:a.size])
		if r < a.size-1 {
			s += "\n"
		}
	}
	return s
}
