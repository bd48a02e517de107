// Package icp implements the Iterative Closest Point scan matcher: a
// rigid 2D registration between a predicted and a measured point
// cloud, refined by alternating nearest-neighbor pairing and a
// Horn/SVD best-fit transform.
package icp

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/mat"
	"github.com/itohio/rbpfslam/internal/vec"
)

// Params controls the iterative refinement.
type Params struct {
	MaxIter         int
	Tolerance       float32
	DiscardFraction float32
}

// Transform is a rigid 2D transform: a 2x2 rotation and a translation.
type Transform struct {
	R00, R01, R10, R11 float32
	Tx, Ty             float32
}

// Identity is the no-op transform.
var Identity = Transform{R00: 1, R11: 1}

// Apply maps a point through the transform.
func (t Transform) Apply(p vec.Vector2) vec.Vector2 {
	return vec.Vector2{
		X: t.R00*p.X + t.R01*p.Y + t.Tx,
		Y: t.R10*p.X + t.R11*p.Y + t.Ty,
	}
}

// ApplyAll maps a slice of points through the transform, in place.
func ApplyAll(t Transform, pts []vec.Vector2) {
	for i, p := range pts {
		pts[i] = t.Apply(p)
	}
}

// Compose returns the transform equivalent to applying inner first,
// then outer.
func Compose(outer, inner Transform) Transform {
	return Transform{
		R00: outer.R00*inner.R00 + outer.R01*inner.R10,
		R01: outer.R00*inner.R01 + outer.R01*inner.R11,
		R10: outer.R10*inner.R00 + outer.R11*inner.R10,
		R11: outer.R10*inner.R01 + outer.R11*inner.R11,
		Tx:  outer.R00*inner.Tx + outer.R01*inner.Ty + outer.Tx,
		Ty:  outer.R10*inner.Tx + outer.R11*inner.Ty + outer.Ty,
	}
}

// fitTransform computes the best-fit rigid transform from P onto Q
// (equal-length, index-correspondent clouds) via Horn/SVD. Returns the
// identity for degenerate inputs (n<2 or a zero singular value).
func fitTransform(p, q []vec.Vector2) Transform {
	n := len(p)
	if n < 2 {
		return Identity
	}

	cp := vec.Centroid(p)
	cq := vec.Centroid(q)

	h := mat.New(2, 2)
	for i := 0; i < n; i++ {
		px, py := p[i].X-cp.X, p[i].Y-cp.Y
		qx, qy := q[i].X-cq.X, q[i].Y-cq.Y
		h[0][0] += px * qx
		h[0][1] += px * qy
		h[1][0] += py * qx
		h[1][1] += py * qy
	}

	var svd mat.SVDResult
	if err := h.SVD(&svd); err != nil {
		return Identity
	}
	for _, sv := range svd.S {
		if math32.Abs(sv) < 1e-9 {
			return Identity
		}
	}

	// R = V * U^T
	u := svd.U
	v := mat.New(2, 2)
	v.Transpose(svd.Vt)

	r := mat.New(2, 2)
	r.Mul(v, mat.New(2, 2, u[0][0], u[1][0], u[0][1], u[1][1]))

	det := r[0][0]*r[1][1] - r[0][1]*r[1][0]
	if det < 0 {
		v[0][1] = -v[0][1]
		v[1][1] = -v[1][1]
		r.Mul(v, mat.New(2, 2, u[0][0], u[1][0], u[0][1], u[1][1]))
	}

	return Transform{
		R00: r[0][0], R01: r[0][1],
		R10: r[1][0], R11: r[1][1],
		Tx: cq.X - (r[0][0]*cp.X + r[0][1]*cp.Y),
		Ty: cq.Y - (r[1][0]*cp.X + r[1][1]*cp.Y),
	}
}

// nearestNeighbor finds, for every point in a, the index in b at
// minimum squared distance. O(len(a)*len(b)), acceptable at the scan
// sizes this matcher is used for.
func nearestNeighbor(a, b []vec.Vector2) (indices []int, dist []float32) {
	indices = make([]int, len(a))
	dist = make([]float32, len(a))
	for i, pa := range a {
		best := 0
		bestD := pa.DistanceSqr(b[0])
		for j := 1; j < len(b); j++ {
			d := pa.DistanceSqr(b[j])
			if d < bestD {
				bestD = d
				best = j
			}
		}
		indices[i] = best
		dist[i] = bestD
	}
	return indices, dist
}

// trim removes the discardFraction largest-error rows from a, b
// jointly, by their paired (positional) squared distance.
func trim(a, b []vec.Vector2, discardFraction float32) ([]vec.Vector2, []vec.Vector2) {
	n := len(a)
	remove := int(discardFraction * float32(n))
	if remove <= 0 {
		return append([]vec.Vector2(nil), a...), append([]vec.Vector2(nil), b...)
	}
	type row struct {
		i int
		d float32
	}
	rows := make([]row, n)
	for i := range a {
		rows[i] = row{i, a[i].DistanceSqr(b[i])}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].d > rows[j].d })
	dropped := make(map[int]bool, remove)
	for i := 0; i < remove && i < n; i++ {
		dropped[rows[i].i] = true
	}
	ta := make([]vec.Vector2, 0, n-remove)
	tb := make([]vec.Vector2, 0, n-remove)
	for i := range a {
		if !dropped[i] {
			ta = append(ta, a[i])
			tb = append(tb, b[i])
		}
	}
	return ta, tb
}

// Align registers predicted cloud a onto measured cloud b, returning a
// pose correction (dx, dy, dtheta) gated at 3*sqrt(sigmaX^2+sigmaY^2).
// A degenerate or out-of-gate result returns the zero correction.
func Align(a, b []vec.Vector2, params Params, sigmaX, sigmaY float32) (dx, dy, dtheta float32) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, 0, 0
	}

	trimmedA, trimmedB := trim(a, b, params.DiscardFraction)
	if len(trimmedA) < 2 {
		return 0, 0, 0
	}

	total := Identity
	work := append([]vec.Vector2(nil), trimmedA...)
	const sentinel = math32.MaxFloat32
	prevMean := float32(sentinel)

	maxIter := params.MaxIter
	if maxIter <= 0 {
		maxIter = 1
	}
	for iter := 0; iter < maxIter; iter++ {
		idx, d := nearestNeighbor(work, trimmedB)
		matched := make([]vec.Vector2, len(work))
		for i, j := range idx {
			matched[i] = trimmedB[j]
		}

		t := fitTransform(work, matched)
		ApplyAll(t, work)
		total = Compose(t, total)

		var sum float32
		for _, di := range d {
			sum += math32.Sqrt(di)
		}
		mean := sum / float32(len(d))
		if math32.Abs(mean-prevMean) < params.Tolerance {
			break
		}
		prevMean = mean
	}

	final := fitTransform(work, trimmedB)
	total = Compose(final, total)

	gate := 3 * math32.Sqrt(sigmaX*sigmaX+sigmaY*sigmaY)
	tmag := math32.Sqrt(total.Tx*total.Tx + total.Ty*total.Ty)
	if tmag >= gate {
		return 0, 0, 0
	}

	return total.Tx, total.Ty, math32.Atan2(total.R10, total.R00)
}
