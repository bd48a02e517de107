// Package invsensor implements the inverse sensor model: mapping a
// single real scan and a pose onto per-cell occupancy deltas, applied
// to a particle's grid via its saturating bump operation.
package invsensor

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/sensor"
)

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Params are the inverse sensor model's tunables.
type Params struct {
	Alpha float32 // object thickness, cell units
	Beta  float32 // beam width, radians
}

// DefaultParams matches the reference model's defaults.
var DefaultParams = Params{Alpha: 1.0, Beta: 0.1}

// Update applies the inverse sensor model for the given pose and scan
// to every in-bounds cell within range of the sensor, bumping the
// grid's occupancy value accordingly. Panics if the model falls
// through all branches, which indicates a geometry bug (spec: fatal,
// not locally recoverable).
func Update(grid *gridmap.Grid, pose coords.Pose, cfg sensor.Config, scan sensor.Scan, params Params) {
	rho := grid.Cfg.Resolution
	xcr := floor32(pose.X/rho) + 0.5
	ycr := floor32(pose.Y/rho) + 0.5
	k := int(cfg.RMax / rho)
	fovHalf := cfg.FoVRad() / 2

	for iy := int(ycr) - k; iy <= int(ycr)+k; iy++ {
		for ix := int(xcr) - k; ix <= int(xcr)+k; ix++ {
			if !grid.InBounds(ix, iy) {
				continue
			}
			dx := float32(ix) + 0.5 - xcr
			dy := float32(iy) + 0.5 - ycr
			d := math32.Sqrt(dx*dx + dy*dy)
			phi := coords.Wrap(math32.Atan2(dy, dx) - pose.Theta)

			if math32.Abs(phi) > fovHalf {
				continue // outside field of view: contributes 0
			}

			beamIdx := closestBeam(scan, phi)
			beam := scan.Beams[beamIdx]

			rDet := beam.Range / rho
			rEff := math32.Min(float32(k), rDet+params.Alpha/2)

			var delta int16
			switch {
			case math32.Abs(phi-beam.Angle) > params.Beta/2 || d >= rEff:
				delta = 0
			case rDet < float32(k) && math32.Abs(d-rDet) < params.Alpha/2:
				delta = -grid.Cfg.VStep
			case d <= rDet:
				delta = grid.Cfg.VStep
			default:
				panic(fmt.Sprintf("invsensor: geometry inconsistency at cell (%d,%d): phi=%v beam=%v d=%v rDet=%v", ix, iy, phi, beam.Angle, d, rDet))
			}

			grid.Bump(ix, iy, delta)
		}
	}
}

// closestBeam returns the index of the beam whose angle is nearest phi.
func closestBeam(scan sensor.Scan, phi float32) int {
	best := 0
	bestDiff := math32.Abs(scan.Beams[0].Angle - phi)
	for i := 1; i < len(scan.Beams); i++ {
		diff := math32.Abs(scan.Beams[i].Angle - phi)
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return best
}
