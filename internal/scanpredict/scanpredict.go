// Package scanpredict synthesizes, for a single particle, the range
// scan its map would produce from its current pose.
package scanpredict

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/sensor"
)

var cornerOffsets = [3]float32{-0.5, 0, 0.5}

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Predict fills scan in place with the map's expected scan from pose,
// using the given angle column and max range. The scan buffer's
// existing ranges are overwritten to rMax first.
func Predict(grid *gridmap.Grid, pose coords.Pose, angles []float32, rMax float32, scan *sensor.Scan) {
	rho := grid.Cfg.Resolution
	for i, a := range angles {
		scan.Beams[i] = sensor.Beam{Angle: a, Range: rMax}
	}

	xcr := floor32(pose.X/rho) + 0.5
	ycr := floor32(pose.Y/rho) + 0.5
	k := int(rMax / rho)

	ixMin, ixMax := int(xcr)-k, int(xcr)+k
	iyMin, iyMax := int(ycr)-k, int(ycr)+k

	for iy := iyMin; iy <= iyMax; iy++ {
		for ix := ixMin; ix <= ixMax; ix++ {
			if !grid.InBounds(ix, iy) || !grid.Occupied(ix, iy) {
				continue
			}

			var alphaMin, alphaMax float32 = math32.Pi, -math32.Pi
			for _, j := range cornerOffsets {
				for _, i := range cornerOffsets {
					dx := float32(ix) + i - xcr
					dy := float32(iy) + j - ycr
					alpha := coords.Wrap(math32.Atan2(dy, dx) - pose.Theta)
					if alpha < alphaMin {
						alphaMin = alpha
					}
					if alpha > alphaMax {
						alphaMax = alpha
					}
				}
			}

			dx := float32(ix) + 0.5 - xcr
			dy := float32(iy) + 0.5 - ycr
			d := math32.Sqrt(dx*dx + dy*dy)
			if d >= float32(k) {
				continue
			}
			rangeMeters := d * rho

			wraps := alphaMin < -math32.Pi/2 && alphaMax > math32.Pi/2
			for bi, ang := range angles {
				var inFootprint bool
				if wraps {
					inFootprint = ang <= alphaMin || ang >= alphaMax
				} else {
					inFootprint = ang >= alphaMin && ang <= alphaMax
				}
				if !inFootprint {
					continue
				}
				if rangeMeters < scan.Beams[bi].Range {
					scan.Beams[bi].Range = rangeMeters
				}
			}
		}
	}
}
