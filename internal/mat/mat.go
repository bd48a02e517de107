// Package mat provides a minimal row-major float32 matrix type and the
// handful of dense linear algebra operations the ICP scan matcher needs.
package mat

import (
	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/vec"
)

// Matrix is a row-major, densely allocated float32 matrix.
type Matrix [][]float32

// New allocates a rows x cols matrix, optionally filled row-major from
// backing.
func New(rows, cols int, backing ...float32) Matrix {
	m := make(Matrix, rows)
	flat := make([]float32, rows*cols)
	if len(backing) > 0 {
		copy(flat, backing)
	}
	for i := 0; i < rows; i++ {
		m[i] = flat[i*cols : (i+1)*cols]
	}
	return m
}

// Eye fills m with the identity matrix in place.
func (m Matrix) Eye() Matrix {
	for i := range m {
		for j := range m[i] {
			if i == j {
				m[i][j] = 1
			} else {
				m[i][j] = 0
			}
		}
	}
	return m
}

func (m Matrix) Clone() Matrix {
	c := New(len(m), len(m[0]))
	for i := range m {
		copy(c[i], m[i])
	}
	return c
}

// Transpose writes the transpose of src into m. m must be shaped
// cols(src) x rows(src).
func (m Matrix) Transpose(src Matrix) Matrix {
	for i := range src {
		for j := range src[i] {
			m[j][i] = src[i][j]
		}
	}
	return m
}

// Mul computes m = a*b via direct triple-loop multiplication.
func (m Matrix) Mul(a, b Matrix) Matrix {
	inner := len(b)
	for i := range a {
		for j := range b[0] {
			var sum float32
			for k := 0; k < inner; k++ {
				sum += a[i][k] * b[k][j]
			}
			m[i][j] = sum
		}
	}
	return m
}

// MulVec computes y = m*x for a column vector x.
func MulVec(m Matrix, x vec.Vector) vec.Vector {
	y := vec.New(len(m))
	for i := range m {
		var sum float32
		for j := range m[i] {
			sum += m[i][j] * x[j]
		}
		y[i] = sum
	}
	return y
}

// Rotation2D builds a 2x2 rotation matrix for the given angle.
func Rotation2D(theta float32) Matrix {
	c, s := math32.Cos(theta), math32.Sin(theta)
	return New(2, 2, c, -s, s, c)
}
