package device

import (
	"sync"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// CellColumns is how many terminal columns one board cell takes, which keeps
// cells roughly square in a terminal font.
const CellColumns = 2

// Framebuffer is a Display that rasterises the pixel board onto a character
// screen: one row per board cell and CellColumns columns per board cell.
// Text positions in font cells are scaled onto the same screen. It is safe
// for concurrent use; terminal backends copy it out with Snapshot.
type Framebuffer struct {
	mu       sync.Mutex
	screen   *core.Screen
	cellSize int
	fontW    int
	fontH    int
	version  uint64
}

// NewFramebuffer creates a framebuffer for grid with the given font size in pixels.
func NewFramebuffer(grid core.Grid, fontW, fontH int) *Framebuffer {
	return &Framebuffer{
		screen:   core.NewScreen(grid.Width*CellColumns, grid.Height),
		cellSize: grid.CellSize,
		fontW:    fontW,
		fontH:    fontH,
	}
}

// ClearScreen blanks the whole screen.
func (f *Framebuffer) ClearScreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen.Clear()
	f.version++
}

// DrawText scales the font cell (row, col) onto the screen and writes text
// there in white.
func (f *Framebuffer) DrawText(row, col int, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	x := col * f.fontW * CellColumns / f.cellSize
	y := row * f.fontH / f.cellSize
	f.screen.DrawText(x, y, text, core.ColorWhite)
	f.version++
}

// DrawFilledCell paints every board cell the pixel rectangle covers.
// Intensity 0 erases, lower intensities draw the apple, higher the body.
func (f *Framebuffer) DrawFilledCell(x, y, w, h, intensity int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	left, right := cellGlyphs(intensity)
	r := core.NewRect(
		x/f.cellSize*CellColumns,
		y/f.cellSize,
		max(1, w/f.cellSize)*CellColumns,
		max(1, h/f.cellSize),
	)
	for row := r.Y; row < r.Bottom(); row++ {
		for col := r.X; col < r.Right(); col += CellColumns {
			f.screen.SetGlyph(col, row, left)
			f.screen.SetGlyph(col+1, row, right)
		}
	}
	f.version++
}

func cellGlyphs(intensity int) (core.Glyph, core.Glyph) {
	c := core.IntensityColor(intensity)
	switch {
	case intensity <= core.IntensityErase:
		return core.Glyph{Rune: ' '}, core.Glyph{Rune: ' '}
	case intensity < core.IntensityBody:
		return core.Glyph{Rune: '(', Color: c}, core.Glyph{Rune: ')', Color: c}
	default:
		return core.Glyph{Rune: '█', Color: c}, core.Glyph{Rune: '█', Color: c}
	}
}

// Snapshot returns a copy of the screen and its version. The version
// changes whenever something is drawn.
func (f *Framebuffer) Snapshot() (*core.Screen, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen.Snapshot(), f.version
}

// Version returns the current draw counter.
func (f *Framebuffer) Version() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}
