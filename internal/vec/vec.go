// Package vec provides a minimal float32 vector type for 2D pose and
// point-cloud arithmetic.
package vec

import "github.com/chewxy/math32"

// Vector is a flat float32 slice used for points, poses and small
// algebraic intermediates.
type Vector []float32

// New allocates a zeroed vector of the given size.
func New(size int) Vector {
	return make(Vector, size)
}

// NewFrom wraps the given values as a Vector without copying.
func NewFrom(v ...float32) Vector {
	return v[:]
}

func (v Vector) Sum() float32 {
	var sum float32
	for _, val := range v {
		sum += val
	}
	return sum
}

func (v Vector) SumSqr() float32 {
	var sum float32
	for _, val := range v {
		sum += val * val
	}
	return sum
}

func (v Vector) Magnitude() float32 {
	return math32.Sqrt(v.SumSqr())
}

func (v Vector) DistanceSqr(v1 Vector) float32 {
	return v.Clone().Sub(v1).SumSqr()
}

func (v Vector) Distance(v1 Vector) float32 {
	return math32.Sqrt(v.DistanceSqr(v1))
}

func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	clone := make(Vector, len(v))
	copy(clone, v)
	return clone
}

func (v Vector) FillC(c float32) Vector {
	for i := range v {
		v[i] = c
	}
	return v
}

func (v Vector) Add(v1 Vector) Vector {
	for i := range v {
		v[i] += v1[i]
	}
	return v
}

func (v Vector) AddC(c float32) Vector {
	for i := range v {
		v[i] += c
	}
	return v
}

func (v Vector) Sub(v1 Vector) Vector {
	for i := range v {
		v[i] -= v1[i]
	}
	return v
}

func (v Vector) MulC(c float32) Vector {
	for i := range v {
		v[i] *= c
	}
	return v
}

func (v Vector) Dot(v1 Vector) float32 {
	var sum float32
	for i := range v {
		sum += v[i] * v1[i]
	}
	return sum
}

// XY returns the first two components.
func (v Vector) XY() (float32, float32) {
	return v[0], v[1]
}

// Vector2 is a fixed 2D point, used for scan point clouds where the
// allocation overhead of a slice-backed Vector per point is wasteful.
type Vector2 struct {
	X, Y float32
}

func (p Vector2) Sub(q Vector2) Vector2 {
	return Vector2{p.X - q.X, p.Y - q.Y}
}

func (p Vector2) Add(q Vector2) Vector2 {
	return Vector2{p.X + q.X, p.Y + q.Y}
}

func (p Vector2) MulC(c float32) Vector2 {
	return Vector2{p.X * c, p.Y * c}
}

func (p Vector2) DistanceSqr(q Vector2) float32 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Vector2) Distance(q Vector2) float32 {
	return math32.Sqrt(p.DistanceSqr(q))
}

// Centroid returns the mean of the given points. Returns the zero point
// for an empty slice.
func Centroid(points []Vector2) Vector2 {
	if len(points) == 0 {
		return Vector2{}
	}
	var c Vector2
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float32(len(points))
	return Vector2{c.X / n, c.Y / n}
}
