// Package particlefilter holds the Particle type and the controller-
// level operations that act on a particle population: motion
// prediction, weighting and systematic resampling.
package particlefilter

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/sensor"
)

// Particle owns a pose hypothesis, its weight, its own occupancy grid
// and a buffer for the scan predicted from that grid.
type Particle struct {
	Pose           coords.Pose
	Weight         float32
	Map            *gridmap.Grid
	PredictedScan  sensor.Scan
	rng            *rand.Rand
}

// NewPopulation creates n particles sharing the given initial pose and
// map configuration, with uniform weights 1/n and one independent RNG
// stream per particle (spec §9: one seeded RNG per particle, not a
// fresh generator per call).
func NewPopulation(n int, initial coords.Pose, gridCfg gridmap.Config, angles []float32, rMax float32, seed int64) []*Particle {
	particles := make([]*Particle, n)
	w := float32(1) / float32(n)
	for i := range particles {
		particles[i] = &Particle{
			Pose:          initial,
			Weight:        w,
			Map:           gridmap.New(gridCfg),
			PredictedScan: sensor.NewScan(angles, rMax),
			rng:           rand.New(rand.NewSource(seed + int64(i))),
		}
	}
	return particles
}

// MotionNoise is the per-axis standard deviation of the motion model's
// additive Gaussian noise (sigma_x, sigma_y, sigma_theta).
type MotionNoise struct {
	SigmaX, SigmaY, SigmaTheta float32
}

// Predict propagates every particle's pose by dt under command (v,
// omega), then perturbs it with independent per-particle, per-
// component Gaussian noise.
func Predict(particles []*Particle, v, omega, dt float32, noise MotionNoise) {
	for _, p := range particles {
		c, s := math32.Cos(p.Pose.Theta), math32.Sin(p.Pose.Theta)
		x := p.Pose.X + dt*v*c
		y := p.Pose.Y + dt*v*s
		theta := p.Pose.Theta + dt*omega

		x += noise.SigmaX * float32(p.rng.NormFloat64())
		y += noise.SigmaY * float32(p.rng.NormFloat64())
		theta += noise.SigmaTheta * float32(p.rng.NormFloat64())

		p.Pose = coords.Pose{X: x, Y: y, Theta: coords.Wrap(theta)}
	}
}

// Weigh sets each particle's weight from the per-beam Gaussian
// measurement likelihood between its predicted and the real scan, then
// normalizes across the population. If the unnormalized sum falls
// below 1e-3 every weight is reset to 1/N (degenerate branch); the
// caller is expected to log this.
func Weigh(particles []*Particle, measured sensor.Scan, sigmaR float32) (degenerate bool) {
	n := float32(len(particles))
	norm := float32(1) / (sigmaR * math32.Sqrt(2*math32.Pi))
	var sum float32
	for _, p := range particles {
		var acc float32
		for i, beam := range measured.Beams {
			pred := p.PredictedScan.Beams[i].Range
			s := math32.Abs(beam.Range - pred)
			z := s / sigmaR
			acc += norm * math32.Exp(-0.5*z*z)
		}
		p.Weight = acc / n
		sum += p.Weight
	}
	if sum < 1e-3 {
		w := 1 / n
		for _, p := range particles {
			p.Weight = w
		}
		return true
	}
	for _, p := range particles {
		p.Weight /= sum
	}
	return false
}

// Resample performs systematic resampling in place: poses and maps are
// copied from the selected survivors into the original slots (maps are
// cloned, never aliased, so siblings never share a grid), and every
// weight is reset to 1/N.
func Resample(particles []*Particle, u float32) {
	n := len(particles)
	cum := make([]float32, n)
	var acc float32
	for i, p := range particles {
		acc += p.Weight
		cum[i] = acc
	}

	type survivor struct {
		pose coords.Pose
		grid *gridmap.Grid
		scan sensor.Scan
	}
	selected := make([]survivor, n)
	j := 0
	for k := 0; k < n; k++ {
		tau := u + float32(k)/float32(n)
		for j < n-1 && cum[j] < tau {
			j++
		}
		selected[k] = survivor{pose: particles[j].Pose, grid: particles[j].Map, scan: particles[j].PredictedScan}
	}

	seen := make(map[*gridmap.Grid]bool, n)
	w := 1 / float32(n)
	for k, sel := range selected {
		particles[k].Pose = sel.pose
		particles[k].PredictedScan = sel.scan
		particles[k].Weight = w
		if seen[sel.grid] {
			particles[k].Map = sel.grid.Clone()
		} else {
			particles[k].Map = sel.grid
			seen[sel.grid] = true
		}
	}
}

// BestIndex returns the index of the maximum-weight particle, ties
// broken by the lowest index.
func BestIndex(particles []*Particle) int {
	best := 0
	for i := 1; i < len(particles); i++ {
		if particles[i].Weight > particles[best].Weight {
			best = i
		}
	}
	return best
}
