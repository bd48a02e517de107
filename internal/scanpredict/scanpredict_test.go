package scanpredict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/sensor"
)

func TestPredictFindsWallAhead(t *testing.T) {
	cfg := gridmap.Config{Resolution: 0.05, Width: 4, Height: 4, VMin: -100, VMax: 100, VStep: 10, VThr: 0}
	g := gridmap.New(cfg)
	// Place robot 1 m from the grid's lower-left corner, wall directly ahead (+x).
	pose := coords.Pose{X: 1, Y: 1, Theta: 0}
	wallIX := int(pose.X/cfg.Resolution) + 10 // 0.5 m ahead
	wallIY := int(pose.Y / cfg.Resolution)
	for dy := -1; dy <= 1; dy++ {
		g.Set(wallIX, wallIY+dy, -50)
	}

	angles := []float32{0}
	scan := sensor.NewScan(angles, 5)
	Predict(g, pose, angles, 5, &scan)

	if scan.Beams[0].Range >= 5 {
		t.Fatal("expected beam to detect the wall, got max range")
	}
	assert.InDelta(t, float32(0.5), scan.Beams[0].Range, 0.1)
}

func TestPredictEmptyMapKeepsMaxRange(t *testing.T) {
	cfg := gridmap.Config{Resolution: 0.05, Width: 2, Height: 2, VMin: -100, VMax: 100, VStep: 10, VThr: -1000}
	g := gridmap.New(cfg)
	angles := []float32{-0.5, 0, 0.5}
	scan := sensor.NewScan(angles, 3)
	Predict(g, coords.Pose{X: 1, Y: 1}, angles, 3, &scan)
	for _, b := range scan.Beams {
		if b.Range != 3 {
			t.Errorf("range = %v, want max range 3 on an all-free map", b.Range)
		}
	}
}
