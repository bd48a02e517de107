package rbpf

import "testing"

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Grid.Resolution = 0.05
	cfg.Grid.Width = 2
	cfg.Grid.Height = 2
	cfg.Grid.VMin = -100
	cfg.Grid.VMax = 100
	cfg.Sensor.N = 9
	cfg.Sensor.SigmaR = 0.1
	return cfg
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateRejectsNonPositiveParticleCount(t *testing.T) {
	cfg := validConfig()
	cfg.ParticleCount = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject particle_count <= 0")
	}
}

func TestValidateRejectsNonPositiveResolution(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.Resolution = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject resolution <= 0")
	}
}

func TestValidateRejectsInvertedVRange(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.VMin = 100
	cfg.Grid.VMax = -100
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject VMin >= VMax")
	}
}

func TestValidateRejectsNonPositiveSigmaR(t *testing.T) {
	cfg := validConfig()
	cfg.Sensor.SigmaR = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject sigma_r <= 0")
	}
}
