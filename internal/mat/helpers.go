package mat

import "github.com/chewxy/math32"

// pytag computes sqrt(a^2+b^2) without intermediate overflow, used by
// the QR-iteration diagonalization step of SVD below when
// accumulating the rotations that feed icp.fitTransform's 2x2 Horn
// best-fit.
func pytag(a, b float32) float32 {
	absa := math32.Abs(a)
	absb := math32.Abs(b)
	if absa > absb {
		return absa * math32.Sqrt(1.0+(absb/absa)*(absb/absa))
	}
	if absb == 0.0 {
		return 0.0
	}
	return absb * math32.Sqrt(1.0+(absa/absb)*(absa/absb))
}

// sign returns the magnitude of a with the sign of b, used by SVD's QR
// sweep to pick the numerically stable root at each rotation step.
func sign(a, b float32) float32 {
	if b >= 0.0 {
		return math32.Abs(a)
	}
	return -math32.Abs(a)
}

// fmax tracks SVD's running norm estimate (anorm), used to scale the
// convergence threshold for the tiny matrices ICP ever decomposes.
func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// imin bounds the diagonalization loop to the decomposition's rank,
// min(rows, cols) — always 2 or 3 for a point-cloud cross-covariance.
func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}
