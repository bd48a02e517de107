package invsensor

import (
	"testing"

	"github.com/itohio/rbpfslam/internal/coords"
	"github.com/itohio/rbpfslam/internal/gridmap"
	"github.com/itohio/rbpfslam/internal/sensor"
)

func TestUpdateBeamBoundary(t *testing.T) {
	gridCfg := gridmap.Config{Resolution: 0.05, Width: 4, Height: 4, VMin: -100, VMax: 100, VStep: 10, VThr: 0}
	grid := gridmap.New(gridCfg)
	pose := coords.Pose{X: 1, Y: 2, Theta: 0} // robot facing +x with 3 m of grid ahead

	sensorCfg := sensor.Config{FoVDeg: 180, N: 1, RMax: 5, SigmaR: 0.1}
	scan := sensor.Scan{Beams: []sensor.Beam{{Angle: 0, Range: 2}}}

	Update(grid, pose, sensorCfg, scan, DefaultParams)

	robotIX := int(pose.X / gridCfg.Resolution)
	robotIY := int(pose.Y / gridCfg.Resolution)
	occupiedIX := robotIX + 40 // 2m / 0.05m = 40 cells

	if grid.Get(occupiedIX, robotIY) >= gridCfg.VThr {
		t.Errorf("cell at detected range should be pushed toward occupied, got %v", grid.Get(occupiedIX, robotIY))
	}

	freeIX := robotIX + 20
	if grid.Get(freeIX, robotIY) <= 0 {
		t.Errorf("cell before detected range should be pushed toward free, got %v", grid.Get(freeIX, robotIY))
	}
}

func TestUpdateOutsideFieldOfViewIsUnaffected(t *testing.T) {
	gridCfg := gridmap.Config{Resolution: 0.05, Width: 4, Height: 4, VMin: -100, VMax: 100, VStep: 10, VThr: 0}
	grid := gridmap.New(gridCfg)
	pose := coords.Pose{X: 2, Y: 2, Theta: 0}

	sensorCfg := sensor.Config{FoVDeg: 90, N: 1, RMax: 5, SigmaR: 0.1}
	scan := sensor.Scan{Beams: []sensor.Beam{{Angle: 0, Range: 2}}}

	before := grid.Get(int(pose.X/gridCfg.Resolution), int(pose.Y/gridCfg.Resolution)-39)
	Update(grid, pose, sensorCfg, scan, DefaultParams)
	after := grid.Get(int(pose.X/gridCfg.Resolution), int(pose.Y/gridCfg.Resolution)-39)
	if before != after {
		t.Errorf("cell beside the robot, outside the sensor's FoV, should be untouched: before=%v after=%v", before, after)
	}
}
