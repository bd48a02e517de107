// Golub-Reinsch SVD (Householder bidiagonalization + QR iteration),
// the only numerical machinery icp.fitTransform needs: decomposing a
// 2x2 (or 3x3, for a future z/roll/pitch extension) point-cloud
// cross-covariance matrix H into U*Sigma*V^T so the Horn best-fit
// rotation R = V*U^T can be read off directly.

package mat

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/vec"
)

// SVDResult holds M = U * Sigma * V^T for a cross-covariance matrix H
// fed in by icp.fitTransform; Vt is V transposed, matching the Horn
// method's R = V*U^T formula.
type SVDResult struct {
	U  Matrix
	S  vec.Vector
	Vt Matrix
}

// SVD decomposes m (rows >= cols — icp.fitTransform always passes a
// square 2x2 cross-covariance, never a wide matrix). dst.U is a fresh
// matrix; m itself is left untouched.
func (m Matrix) SVD(dst *SVDResult) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return errors.New("svd: empty matrix")
	}

	rows := len(m)
	cols := len(m[0])
	if rows < cols {
		return errors.New("svd: rows must be >= cols, transpose first")
	}

	dst.S = make(vec.Vector, cols)
	dst.Vt = New(cols, cols)
	rv1 := make(vec.Vector, cols)

	U := New(rows, cols)
	for i := range m {
		copy(U[i], m[i])
	}

	var flag bool
	var i, its, j, jj, k, l, nm int
	var anorm, c, f, g, h, s, scale, x, y, z float32

	g = 0.0
	scale = 0.0
	anorm = 0.0
	for i = 0; i < cols; i++ {
		l = i + 1
		rv1[i] = scale * g
		g = 0.0
		s = 0.0
		scale = 0.0

		if i < rows {
			for k = i; k < rows; k++ {
				scale += math32.Abs(U[k][i])
			}
			if scale != 0.0 {
				for k = i; k < rows; k++ {
					U[k][i] /= scale
					s += U[k][i] * U[k][i]
				}
				f = U[i][i]
				g = -sign(math32.Sqrt(s), f)
				h = f*g - s
				U[i][i] = f - g
				for j = l; j < cols; j++ {
					s = 0.0
					for k = i; k < rows; k++ {
						s += U[k][i] * U[k][j]
					}
					f = s / h
					for k = i; k < rows; k++ {
						U[k][j] += f * U[k][i]
					}
				}
				for k = i; k < rows; k++ {
					U[k][i] *= scale
				}
			}
		}
		dst.S[i] = scale * g
		g = 0.0
		s = 0.0
		scale = 0.0

		if i < rows && i != (cols-1) {
			for k = l; k < cols; k++ {
				scale += math32.Abs(U[i][k])
			}
			if scale != 0.0 {
				for k = l; k < cols; k++ {
					U[i][k] /= scale
					s += U[i][k] * U[i][k]
				}
				f = U[i][l]
				g = -sign(math32.Sqrt(s), f)
				h = f*g - s
				U[i][l] = f - g
				for k = l; k < cols; k++ {
					rv1[k] = U[i][k] / h
				}
				for j = l; j < rows; j++ {
					s = 0.0
					for k = l; k < cols; k++ {
						s += U[j][k] * U[i][k]
					}
					for k = l; k < cols; k++ {
						U[j][k] += s * rv1[k]
					}
				}
				for k = l; k < cols; k++ {
					U[i][k] *= scale
				}
			}
		}
		anorm = fmax(anorm, math32.Abs(dst.S[i])+math32.Abs(rv1[i]))
	}

	for i = cols - 1; i >= 0; i-- {
		if i < (cols - 1) {
			if g != 0.0 {
				for j = l; j < cols; j++ {
					dst.Vt[j][i] = (U[i][j] / U[i][l]) / g
				}
				for j = l; j < cols; j++ {
					s = 0.0
					for k = l; k < cols; k++ {
						s += U[i][k] * dst.Vt[k][j]
					}
					for k = l; k < cols; k++ {
						dst.Vt[k][j] += s * dst.Vt[k][i]
					}
				}
			}
			for j = l; j < cols; j++ {
				dst.Vt[i][j] = 0.0
				dst.Vt[j][i] = 0.0
			}
		}
		dst.Vt[i][i] = 1.0
		g = rv1[i]
		l = i
	}

	for i = imin(rows, cols) - 1; i >= 0; i-- {
		l = i + 1
		g = dst.S[i]
		for j = l; j < cols; j++ {
			U[i][j] = 0.0
		}
		if g != 0.0 {
			g = 1.0 / g
			for j = l; j < cols; j++ {
				s = 0.0
				for k = l; k < rows; k++ {
					s += U[k][i] * U[k][j]
				}
				f = (s / U[i][i]) * g
				for k = i; k < rows; k++ {
					U[k][j] += f * U[k][i]
				}
			}
			for j = i; j < rows; j++ {
				U[j][i] *= g
			}
		} else {
			for j = i; j < rows; j++ {
				U[j][i] = 0.0
			}
		}
		U[i][i] += 1.0
	}

	const maxIterations = 30
	for k = cols - 1; k >= 0; k-- {
		for its = 1; its <= maxIterations; its++ {
			flag = true
			for l = k; l >= 0; l-- {
				nm = l - 1
				if math32.Abs(rv1[l])+anorm == anorm {
					flag = false
					break
				}
				if math32.Abs(dst.S[nm])+anorm == anorm {
					break
				}
			}
			if flag {
				c = 0.0
				s = 1.0
				for i = l; i <= k; i++ {
					f = s * rv1[i]
					rv1[i] = c * rv1[i]
					if math32.Abs(f)+anorm == anorm {
						break
					}
					g = dst.S[i]
					h = pytag(f, g)
					dst.S[i] = h
					h = 1.0 / h
					c = g * h
					s = -f * h
					for j = 0; j < rows; j++ {
						y = U[j][nm]
						z = U[j][i]
						U[j][nm] = y*c + z*s
						U[j][i] = z*c - y*s
					}
				}
			}
			z = dst.S[k]
			if l == k {
				if z < 0.0 {
					dst.S[k] = -z
					for j = 0; j < cols; j++ {
						dst.Vt[j][k] = -dst.Vt[j][k]
					}
				}
				break
			}
			if its == maxIterations {
				return errors.New("svd: no convergence in 30 iterations")
			}
			x = dst.S[l]
			nm = k - 1
			y = dst.S[nm]
			g = rv1[nm]
			h = rv1[k]
			f = ((y-z)*(y+z) + (g-h)*(g+h)) / (2.0 * h * y)
			g = pytag(f, 1.0)
			f = ((x-z)*(x+z) + h*((y/(f+sign(g, f)))-h)) / x
			c = 1.0
			s = 1.0
			for j = l; j < nm+1; j++ {
				i = j + 1
				g = rv1[i]
				y = dst.S[i]
				h = s * g
				g = c * g
				z = pytag(f, h)
				rv1[j] = z
				c = f / z
				s = h / z
				f = x*c + g*s
				g = g*c - x*s
				h = y * s
				y *= c
				for jj = 0; jj < cols; jj++ {
					x = dst.Vt[jj][j]
					z = dst.Vt[jj][i]
					dst.Vt[jj][j] = x*c + z*s
					dst.Vt[jj][i] = z*c - x*s
				}
				z = pytag(f, h)
				dst.S[j] = z
				if z != 0.0 {
					z = 1.0 / z
					c = f * z
					s = h * z
				}
				f = c*g + s*y
				x = c*y - s*g
				for jj = 0; jj < rows; jj++ {
					y = U[jj][j]
					z = U[jj][i]
					U[jj][j] = y*c + z*s
					U[jj][i] = z*c - y*s
				}
			}
			rv1[l] = 0.0
			rv1[k] = f
			dst.S[k] = x
		}
	}

	dst.U = U
	dst.Vt = New(cols, cols).Transpose(dst.Vt)
	return nil
}
