// Package coords provides the pose type and the coordinate transforms
// shared between the occupancy grid, the scan predictor and the ICP
// matcher.
package coords

import (
	"math"

	"github.com/chewxy/math32"
)

// Pose is a 2D robot pose: position in meters, heading in radians.
type Pose struct {
	X, Y, Theta float32
}

// Wrap normalizes an angle (radians) into [-pi, pi).
func Wrap(theta float32) float32 {
	const twoPi = 2 * math32.Pi
	theta = float32(math.Mod(float64(theta), float64(twoPi)))
	if theta >= math32.Pi {
		theta -= twoPi
	}
	if theta < -math32.Pi {
		theta += twoPi
	}
	return theta
}

// World2Map converts a world-frame coordinate (meters) into fractional
// grid cell coordinates given a resolution (meters per cell).
func World2Map(x, y, resolution float32) (ix, iy float32) {
	return x / resolution, y / resolution
}

// Map2World converts fractional grid cell coordinates back into a
// world-frame coordinate (meters).
func Map2World(ix, iy, resolution float32) (x, y float32) {
	return ix * resolution, iy * resolution
}

// Compose applies a rigid transform (dx, dy in the frame of p, dtheta)
// on top of pose p, returning the resulting world-frame pose.
func (p Pose) Compose(dx, dy, dtheta float32) Pose {
	c, s := math32.Cos(p.Theta), math32.Sin(p.Theta)
	return Pose{
		X:     p.X + c*dx - s*dy,
		Y:     p.Y + s*dx + c*dy,
		Theta: Wrap(p.Theta + dtheta),
	}
}
