// Package rbpf implements the core of a Rao-Blackwellized particle
// filter for 2D SLAM: per-tick motion prediction, scan prediction, ICP
// scan matching, measurement weighting, systematic resampling and
// inverse-sensor-model mapping.
package rbpf

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	mathrand "math/rand"

	"github.com/mr-tron/base58"

	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/icp"
	"github.com/itohio/rbpfslam/internal/invsensor"
	"github.com/itohio/rbpfslam/internal/particlefilter"
	"github.com/itohio/rbpfslam/internal/robot"
	"github.com/itohio/rbpfslam/internal/scanpredict"
	"github.com/itohio/rbpfslam/internal/sensor"
	"github.com/itohio/rbpfslam/internal/telemetry"
)

// ParticleView is a read-only projection of one particle's pose and
// weight, exposed to collaborators.
type ParticleView struct {
	Pose   coords.Pose
	Weight float32
}

// Filter is the mutable RBPF state: the particle population, the last
// processed timestamp and the session identifier used to correlate log
// lines across a run.
type Filter struct {
	cfg       Config
	particles []*particlefilter.Particle
	tPrev     float32
	sessionID string
	rng       *mathrand.Rand
	log       telemetry.Logger
}

// New constructs a filter with uniform weights and a common initial
// pose. Panics on a configuration error (spec: configuration errors
// are fatal at construction).
func New(initial coords.Pose, opts ...Option) *Filter {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	angles := cfg.Sensor.AngleColumn()
	particles := particlefilter.NewPopulation(cfg.ParticleCount, initial, cfg.Grid, angles, cfg.Sensor.RMax, cfg.Seed)

	sessionID := newSessionID()
	f := &Filter{
		cfg:       cfg,
		particles: particles,
		sessionID: sessionID,
		rng:       mathrand.New(mathrand.NewSource(cfg.Seed)),
		log:       telemetry.Session(sessionID),
	}
	f.log.Summary(f.Summary())
	return f
}

func newSessionID() string {
	buf := make([]byte, 8)
	_, _ = cryptorand.Read(buf)
	return base58.Encode(buf)
}

// Summary returns a human-readable configuration dump, restoring the
// reference implementation's summary print as a returned string since
// the core has no CLI surface of its own.
func (f *Filter) Summary() string {
	return fmt.Sprintf("rbpf session=%s particles=%d mode=%d grid=%gx%g@%g",
		f.sessionID, len(f.particles), f.cfg.Mode, f.cfg.Grid.Width, f.cfg.Grid.Height, f.cfg.Grid.Resolution)
}

// Tick advances the filter by one sensor cycle, reading the robot and
// sensor sources and dispatching phases according to the configured
// mode.
func (f *Filter) Tick(ctx context.Context, src robot.Source, sensorSrc sensor.Source) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cmd := src.Command()
	dt := cmd.T - f.tPrev
	f.tPrev = cmd.T

	switch f.cfg.Mode {
	case MapOnly:
		truth := src.Pose()
		for _, p := range f.particles {
			p.Pose = truth
		}
		f.mapAll(sensorSrc)
		return nil
	default:
		particlefilter.Predict(f.particles, cmd.V, cmd.Omega, dt, f.cfg.MotionNoise)

		scan := sensorSrc.Scan()
		for _, p := range f.particles {
			scanpredict.Predict(p.Map, p.Pose, f.cfg.Sensor.AngleColumn(), f.cfg.Sensor.RMax, &p.PredictedScan)

			predictedCloud := p.PredictedScan.Cartesian(p.Pose)
			measuredCloud := scan.Cartesian(p.Pose)
			dx, dy, dtheta := icp.Align(predictedCloud, measuredCloud, f.cfg.ICP, f.cfg.MotionNoise.SigmaX, f.cfg.MotionNoise.SigmaY)
			p.Pose = coords.Pose{
				X:     p.Pose.X + dx,
				Y:     p.Pose.Y + dy,
				Theta: coords.Wrap(p.Pose.Theta + dtheta),
			}
		}

		degenerate := particlefilter.Weigh(f.particles, scan, f.cfg.Sensor.SigmaR)
		if degenerate {
			f.log.Degenerate()
		}
		f.log.Tick(len(f.particles), effectiveSampleSize(f.particles), f.particles[particlefilter.BestIndex(f.particles)].Weight)

		u := float32(f.rng.Float64()) / float32(len(f.particles))
		particlefilter.Resample(f.particles, u)

		if f.cfg.Mode == SLAM {
			f.mapAll(sensorSrc)
		}
		return nil
	}
}

// effectiveSampleSize estimates how many particles are meaningfully
// contributing to the population, 1/sum(w_i^2). It collapses toward 1
// as weight concentrates on a single particle and toward N under
// uniform weights.
func effectiveSampleSize(particles []*particlefilter.Particle) float32 {
	var sumSq float32
	for _, p := range particles {
		sumSq += p.Weight * p.Weight
	}
	if sumSq == 0 {
		return 0
	}
	return 1 / sumSq
}

func (f *Filter) mapAll(sensorSrc sensor.Source) {
	scan := sensorSrc.Scan()
	cfg := sensorSrc.Config()
	for _, p := range f.particles {
		invsensor.Update(p.Map, p.Pose, cfg, scan, f.cfg.InvSensor)
	}
}

// BestMap returns the map of the maximum-weight particle, ties broken
// by lowest index.
func (f *Filter) BestMap() *gridmap.Grid {
	return f.particles[particlefilter.BestIndex(f.particles)].Map
}

// Particles returns a read-only snapshot of every particle's pose and
// weight.
func (f *Filter) Particles() []ParticleView {
	views := make([]ParticleView, len(f.particles))
	for i, p := range f.particles {
		views[i] = ParticleView{Pose: p.Pose, Weight: p.Weight}
	}
	return views
}
