package gridmap

import "testing"

func testConfig() Config {
	return Config{
		Resolution: 0.05,
		Width:      2,
		Height:     2,
		VMin:       -100,
		VMax:       100,
		VStep:      10,
		VThr:       0,
	}
}

func TestNewDimensions(t *testing.T) {
	g := New(testConfig())
	if g.W != 40 || g.H != 40 {
		t.Fatalf("dims = %d x %d, want 40 x 40", g.W, g.H)
	}
}

func TestInBounds(t *testing.T) {
	g := New(testConfig())
	if !g.InBounds(0, 0) || !g.InBounds(39, 39) {
		t.Error("corner cells should be in bounds")
	}
	if g.InBounds(-1, 0) || g.InBounds(40, 0) {
		t.Error("out-of-range indices should not be in bounds")
	}
}

func TestSetClampsToRange(t *testing.T) {
	g := New(testConfig())
	g.Set(5, 5, 1000)
	if g.Get(5, 5) != g.Cfg.VMax {
		t.Errorf("Set() should clamp to VMax, got %v", g.Get(5, 5))
	}
	g.Set(5, 5, -1000)
	if g.Get(5, 5) != g.Cfg.VMin {
		t.Errorf("Set() should clamp to VMin, got %v", g.Get(5, 5))
	}
}

func TestBumpSaturatesAtBoundary(t *testing.T) {
	g := New(testConfig())
	g.Set(1, 1, g.Cfg.VMax-5)
	g.Bump(1, 1, 10)
	if g.Get(1, 1) != g.Cfg.VMax {
		t.Errorf("Bump() near VMax should clamp, got %v", g.Get(1, 1))
	}

	g.Set(2, 2, g.Cfg.VMin+5)
	g.Bump(2, 2, -10)
	if g.Get(2, 2) != g.Cfg.VMin {
		t.Errorf("Bump() near VMin should clamp, got %v", g.Get(2, 2))
	}
}

func TestBumpOutOfBoundsIsNoop(t *testing.T) {
	g := New(testConfig())
	g.Bump(-5, -5, 10) // must not panic
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(testConfig())
	c := g.Clone()
	c.Set(0, 0, g.Cfg.VMax)
	if g.Get(0, 0) == g.Cfg.VMax {
		t.Error("Clone() should not alias the source grid")
	}
}

func TestOccupied(t *testing.T) {
	g := New(testConfig())
	g.Set(0, 0, g.Cfg.VThr-1)
	if !g.Occupied(0, 0) {
		t.Error("cell below VThr should be occupied")
	}
	g.Set(0, 0, g.Cfg.VThr)
	if g.Occupied(0, 0) {
		t.Error("cell at or above VThr should not be occupied")
	}
}
