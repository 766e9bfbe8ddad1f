// Package raster provides the height-surface capability consumed by the
// corridor engine, together with an in-memory grid implementation and a
// reader for the ESRI ASCII grid format. The engine only ever talks to the
// Source interface, so tests and alternative backends can substitute a
// synthetic grid for a real height model.
package raster

import (
	"fmt"

	"github.com/convoi-data/corridor.report/internal/geo"
)

// Source is a read-only view of a 2D height surface in world coordinates.
type Source interface {
	// Dims returns the grid size as (rows, cols).
	Dims() (rows, cols int)
	// NoData returns the declared no-data sentinel, if any.
	NoData() (value float64, ok bool)
	// WorldToCell maps a world coordinate to a cell index. ok is false when
	// the coordinate falls outside the grid.
	WorldToCell(p geo.Point) (row, col int, ok bool)
	// ValueAt returns the raw cell value. Callers must only pass indices
	// previously returned by WorldToCell.
	ValueAt(row, col int) float64
}

// MemGrid is a dense in-memory Source with a GDAL-style affine transform:
// the origin is the outer corner of cell (0,0), cellW is the column step and
// cellH the row step (negative for the usual north-up orientation).
type MemGrid struct {
	rows, cols int
	originX    float64
	originY    float64
	cellW      float64
	cellH      float64
	noData     *float64
	values     []float64
}

// NewMemGrid allocates a zero-filled grid. cellW must be non-zero and cellH
// non-zero; noData may be nil when the grid has no sentinel.
func NewMemGrid(rows, cols int, originX, originY, cellW, cellH float64, noData *float64) (*MemGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", rows, cols)
	}
	if cellW == 0 || cellH == 0 {
		return nil, fmt.Errorf("cell size must be non-zero, got %g x %g", cellW, cellH)
	}
	return &MemGrid{
		rows:    rows,
		cols:    cols,
		originX: originX,
		originY: originY,
		cellW:   cellW,
		cellH:   cellH,
		noData:  noData,
		values:  make([]float64, rows*cols),
	}, nil
}

// Dims implements Source.
func (g *MemGrid) Dims() (int, int) { return g.rows, g.cols }

// NoData implements Source.
func (g *MemGrid) NoData() (float64, bool) {
	if g.noData == nil {
		return 0, false
	}
	return *g.noData, true
}

// WorldToCell implements Source. The bounds check happens on the fractional
// cell index so coordinates just outside the origin corner do not truncate
// into cell 0.
func (g *MemGrid) WorldToCell(p geo.Point) (int, int, bool) {
	fcol := (p.X - g.originX) / g.cellW
	frow := (p.Y - g.originY) / g.cellH
	if fcol < 0 || fcol >= float64(g.cols) || frow < 0 || frow >= float64(g.rows) {
		return 0, 0, false
	}
	return int(frow), int(fcol), true
}

// ValueAt implements Source.
func (g *MemGrid) ValueAt(row, col int) float64 {
	return g.values[row*g.cols+col]
}

// Set writes one cell value.
func (g *MemGrid) Set(row, col int, v float64) {
	g.values[row*g.cols+col] = v
}

// Fill sets every cell to v.
func (g *MemGrid) Fill(v float64) {
	for i := range g.values {
		g.values[i] = v
	}
}

// SetWorld writes the cell containing the world coordinate p, reporting
// whether p was inside the grid.
func (g *MemGrid) SetWorld(p geo.Point, v float64) bool {
	row, col, ok := g.WorldToCell(p)
	if !ok {
		return false
	}
	g.Set(row, col, v)
	return true
}
