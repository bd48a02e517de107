// Package sensor holds the range-sensor data model and the narrow
// capability interface the controller depends on.
package sensor

import (
	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/vec"
)

// Beam is a single range measurement at a fixed angle.
type Beam struct {
	Angle float32
	Range float32
}

// Config describes the sensor's fixed geometry. Constructed once per
// session and treated as a read-only view thereafter.
type Config struct {
	FoVDeg float32
	N      int
	RMax   float32
	SigmaR float32
}

// FoVRad returns the field of view in radians.
func (c Config) FoVRad() float32 {
	return c.FoVDeg * (math32.Pi / 180)
}

// AngleColumn returns the N evenly spaced, strictly monotonic beam
// angles on [-FoV/2, +FoV/2].
func (c Config) AngleColumn() []float32 {
	angles := make([]float32, c.N)
	if c.N == 1 {
		return angles
	}
	fov := c.FoVRad()
	step := fov / float32(c.N-1)
	start := -fov / 2
	for i := range angles {
		angles[i] = start + float32(i)*step
	}
	return angles
}

// Scan is an ordered sequence of beams sharing a session's angle
// column.
type Scan struct {
	Beams []Beam
}

// NewScan allocates a scan with every beam's range set to rMax, for the
// given angle column.
func NewScan(angles []float32, rMax float32) Scan {
	beams := make([]Beam, len(angles))
	for i, a := range angles {
		beams[i] = Beam{Angle: a, Range: rMax}
	}
	return Scan{Beams: beams}
}

// Cartesian converts the scan to world-frame points as seen from pose.
func (s Scan) Cartesian(pose coords.Pose) []vec.Vector2 {
	pts := make([]vec.Vector2, len(s.Beams))
	for i, b := range s.Beams {
		a := pose.Theta + b.Angle
		pts[i] = vec.Vector2{
			X: pose.X + b.Range*math32.Cos(a),
			Y: pose.Y + b.Range*math32.Sin(a),
		}
	}
	return pts
}

// Source is the narrow capability the controller depends on for
// reading sensor state; never implemented by the core itself.
type Source interface {
	Config() Config
	Scan() Scan
}
