package rbpf

import (
	"fmt"
	"os"

	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/icp"
	"github.com/itohio/rbpfslam/internal/invsensor"
	"github.com/itohio/rbpfslam/internal/particlefilter"
	"github.com/itohio/rbpfslam/internal/sensor"
	"gopkg.in/yaml.v3"
)

// Mode selects which phases of a tick the controller runs.
type Mode int

const (
	// SLAM runs the full predict/match/weight/resample/map pipeline.
	SLAM Mode = iota
	// Localize runs predict/match/weight/resample but never maps.
	Localize
	// MapOnly forces every particle to the supplied ground-truth pose
	// and only maps.
	MapOnly
)

// Config is the filter's static configuration, loadable from YAML.
type Config struct {
	ParticleCount int           `yaml:"particle_count"`
	Mode          Mode          `yaml:"mode"`
	MotionNoise   particlefilter.MotionNoise `yaml:"motion_noise"`
	ICP           icp.Params    `yaml:"icp"`
	Grid          gridmap.Config `yaml:"grid"`
	Sensor        sensor.Config `yaml:"sensor"`
	InvSensor     invsensor.Params `yaml:"inverse_sensor_model"`
	Seed          int64         `yaml:"seed"`
}

// DefaultConfig returns a configuration with the reference model's
// inverse-sensor-model defaults and a middling particle count.
func DefaultConfig() Config {
	return Config{
		ParticleCount: 20,
		Mode:          SLAM,
		ICP:           icp.Params{MaxIter: 20, Tolerance: 1e-4, DiscardFraction: 0.1},
		InvSensor:     invsensor.DefaultParams,
		Seed:          1,
	}
}

// Option mutates a Config at construction time.
type Option func(*Config)

func WithParticleCount(n int) Option {
	return func(c *Config) { c.ParticleCount = n }
}

func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

func WithMotionNoise(n particlefilter.MotionNoise) Option {
	return func(c *Config) { c.MotionNoise = n }
}

func WithICPParams(p icp.Params) Option {
	return func(c *Config) { c.ICP = p }
}

func WithGrid(g gridmap.Config) Option {
	return func(c *Config) { c.Grid = g }
}

func WithSensor(s sensor.Config) Option {
	return func(c *Config) { c.Sensor = s }
}

func WithInverseSensorParams(p invsensor.Params) Option {
	return func(c *Config) { c.InvSensor = p }
}

func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rbpf: reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rbpf: parsing config: %w", err)
	}
	return cfg, nil
}

// Validate raises every configuration error the spec lists as fatal.
func (c Config) Validate() error {
	if c.ParticleCount <= 0 {
		return fmt.Errorf("rbpf: particle_count must be > 0, got %d", c.ParticleCount)
	}
	if c.Grid.Resolution <= 0 {
		return fmt.Errorf("rbpf: grid resolution must be > 0, got %v", c.Grid.Resolution)
	}
	if c.Sensor.SigmaR <= 0 {
		return fmt.Errorf("rbpf: sensor sigma_r must be > 0, got %v", c.Sensor.SigmaR)
	}
	if c.Grid.VMin >= c.Grid.VMax {
		return fmt.Errorf("rbpf: grid VMin (%d) must be < VMax (%d)", c.Grid.VMin, c.Grid.VMax)
	}
	if c.Sensor.N <= 0 {
		return fmt.Errorf("rbpf: sensor beam count must be > 0, got %d", c.Sensor.N)
	}
	return nil
}
