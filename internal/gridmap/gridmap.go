// Package gridmap implements the occupancy grid primitive: a row-major
// integer raster with a saturating update operation.
package gridmap

import (
	"image"
	"image/color"
)

// Config describes the static geometry and value range of a grid.
type Config struct {
	Resolution          float32 // meters per cell
	Width, Height       float32 // meters
	VMin, VMax, VStep   int16
	VThr                int16
}

// Grid is a row-major occupancy raster. Cells are stored as int16 so
// VMin/VMax/VStep can be configured beyond an 8-bit range while keeping
// a fixed-width integer cell, per the grid's value semantics.
type Grid struct {
	Cfg    Config
	W, H   int // cell dimensions
	cells  []int16
}

// New allocates a grid of Width/Resolution x Height/Resolution cells,
// all cells initialized to the midpoint of [VMin, VMax].
func New(cfg Config) *Grid {
	w := int(cfg.Width / cfg.Resolution)
	h := int(cfg.Height / cfg.Resolution)
	g := &Grid{Cfg: cfg, W: w, H: h, cells: make([]int16, w*h)}
	init := (cfg.VMin + cfg.VMax) / 2
	for i := range g.cells {
		g.cells[i] = init
	}
	return g
}

// InBounds reports whether (ix, iy) is a valid cell index.
func (g *Grid) InBounds(ix, iy int) bool {
	return ix >= 0 && ix < g.W && iy >= 0 && iy < g.H
}

// Get returns the value at (ix, iy). Out-of-bounds reads return VMin,
// matching the "silently clipped" treatment of out-of-bounds indices.
func (g *Grid) Get(ix, iy int) int16 {
	if !g.InBounds(ix, iy) {
		return g.Cfg.VMin
	}
	return g.cells[iy*g.W+ix]
}

// Set writes the value at (ix, iy), clamped to [VMin, VMax]. Out-of-
// bounds writes are silently ignored.
func (g *Grid) Set(ix, iy int, v int16) {
	if !g.InBounds(ix, iy) {
		return
	}
	if v < g.Cfg.VMin {
		v = g.Cfg.VMin
	} else if v > g.Cfg.VMax {
		v = g.Cfg.VMax
	}
	g.cells[iy*g.W+ix] = v
}

// Bump applies a saturating update of delta to the cell at (ix, iy): if
// the current value is already within one VStep of the boundary the
// delta would cross, it clamps to that boundary instead of adding.
// Out-of-bounds cells are silently ignored.
func (g *Grid) Bump(ix, iy int, delta int16) {
	if !g.InBounds(ix, iy) || delta == 0 {
		return
	}
	idx := iy*g.W + ix
	v := g.cells[idx]
	step := g.Cfg.VStep
	if step < 0 {
		step = -step
	}
	if delta < 0 {
		if v-g.Cfg.VMin <= step {
			g.cells[idx] = g.Cfg.VMin
			return
		}
	} else {
		if g.Cfg.VMax-v <= step {
			g.cells[idx] = g.Cfg.VMax
			return
		}
	}
	nv := v + delta
	if nv < g.Cfg.VMin {
		nv = g.Cfg.VMin
	} else if nv > g.Cfg.VMax {
		nv = g.Cfg.VMax
	}
	g.cells[idx] = nv
}

// Occupied reports whether the cell's value is below the free/occupied
// threshold.
func (g *Grid) Occupied(ix, iy int) bool {
	return g.Get(ix, iy) < g.Cfg.VThr
}

// Clone returns an independent copy of the grid, required so that
// resampling never lets two particles share a map.
func (g *Grid) Clone() *Grid {
	c := &Grid{Cfg: g.Cfg, W: g.W, H: g.H, cells: make([]int16, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// ToImage renders the grid as an 8-bit single-channel image, scaling
// [VMin, VMax] onto [0, 255].
func (g *Grid) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	span := int(g.Cfg.VMax - g.Cfg.VMin)
	if span == 0 {
		span = 1
	}
	for iy := 0; iy < g.H; iy++ {
		for ix := 0; ix < g.W; ix++ {
			v := int(g.Get(ix, iy) - g.Cfg.VMin)
			img.SetGray(ix, iy, color.Gray{Y: uint8(v * 255 / span)})
		}
	}
	return img
}
