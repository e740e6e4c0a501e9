// Package core provides the grid model and drawing primitives shared by the
// game engine and the display backends. It contains no external
// dependencies so game logic stays pure and testable.
package core

// Cell is one grid-aligned square of the board, addressed in grid units.
type Cell struct {
	Col, Row int
}

// Add returns the cell shifted by (dc, dr) grid steps.
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dc, dr := d.Vector()
	return c.Add(dc, dr)
}

// Adjacent reports whether two cells are exactly one orthogonal step apart.
func (c Cell) Adjacent(o Cell) bool {
	return Abs(c.Col-o.Col)+Abs(c.Row-o.Row) == 1
}

// Grid describes the fixed playable area as a lattice of square cells.
type Grid struct {
	CellSize int // Cell side in pixels
	Width    int // Cells across
	Height   int // Cells down
}

// NewGrid builds a grid covering a board of boardW x boardH pixels.
// Partial cells at the right and bottom edges are not playable.
func NewGrid(boardW, boardH, cellSize int) Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Grid{
		CellSize: cellSize,
		Width:    boardW / cellSize,
		Height:   boardH / cellSize,
	}
}

// DefaultGrid returns the 320x240 board with 20 pixel cells (16x12 cells).
func DefaultGrid() Grid {
	return NewGrid(320, 240, 20)
}

// CellCount returns the number of cells on the board.
func (g Grid) CellCount() int {
	return g.Width * g.Height
}

// Contains reports whether c lies on the board.
func (g Grid) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Width && c.Row >= 0 && c.Row < g.Height
}

// ToPixel returns the top-left pixel of c.
func (g Grid) ToPixel(c Cell) (x, y int) {
	return c.Col * g.CellSize, c.Row * g.CellSize
}

// Bounds returns the pixel rectangle covered by c.
func (g Grid) Bounds(c Cell) Rect {
	x, y := g.ToPixel(c)
	return NewRect(x, y, g.CellSize, g.CellSize)
}

// SpawnCell is where a fresh snake's head is placed: the cell left of the
// horizontal centre line, on the middle row.
func (g Grid) SpawnCell() Cell {
	return Cell{Col: g.Width/2 - 1, Row: g.Height / 2}
}

// RandomCell samples a uniformly distributed cell.
func (g Grid) RandomCell(rng Rand) Cell {
	return Cell{
		Col: rng.NextInRange(g.Width),
		Row: rng.NextInRange(g.Height),
	}
}

// RandomFreeCell samples up to attempts cells and returns the first one for
// which excluded reports false.
func (g Grid) RandomFreeCell(rng Rand, excluded func(Cell) bool, attempts int) (Cell, bool) {
	for range attempts {
		c := g.RandomCell(rng)
		if !excluded(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// FreeCells lists every cell, in row-major order, for which excluded reports false.
func (g Grid) FreeCells(excluded func(Cell) bool) []Cell {
	free := make([]Cell, 0, g.CellCount())
	for row := range g.Height {
		for col := range g.Width {
			c := Cell{Col: col, Row: row}
			if !excluded(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// Rand is the random source the grid samples from.
type Rand interface {
	// NextInRange returns a uniformly distributed integer in [0, n).
	NextInRange(n int) int
}

// Rect represents an axis-aligned rectangle in pixels or screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
