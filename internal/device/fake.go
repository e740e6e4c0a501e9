package device

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// FakeDisplay records what was drawn. It is safe for concurrent use.
type FakeDisplay struct {
	mu     sync.Mutex
	cells  map[[2]int]int
	texts  map[[2]int]string
	clears int
	draws  int
}

// NewFakeDisplay creates an empty fake display.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{
		cells: make(map[[2]int]int),
		texts: make(map[[2]int]string),
	}
}

// ClearScreen forgets every cell and text line.
func (d *FakeDisplay) ClearScreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cells = make(map[[2]int]int)
	d.texts = make(map[[2]int]string)
	d.clears++
}

// DrawText records text at (row, col).
func (d *FakeDisplay) DrawText(row, col int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[[2]int{row, col}] = text
}

// DrawFilledCell records intensity at the top-left pixel of the cell.
func (d *FakeDisplay) DrawFilledCell(x, y, w, h, intensity int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draws++
	if intensity == 0 {
		delete(d.cells, [2]int{x, y})
		return
	}
	d.cells[[2]int{x, y}] = intensity
}

// Intensity returns what is drawn at pixel (x, y), 0 when erased.
func (d *FakeDisplay) Intensity(x, y int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cells[[2]int{x, y}]
}

// Lit returns the number of drawn cells.
func (d *FakeDisplay) Lit() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cells)
}

// Text returns the text drawn at (row, col).
func (d *FakeDisplay) Text(row, col int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.texts[[2]int{row, col}]
}

// Clears returns how many times the screen was cleared.
func (d *FakeDisplay) Clears() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// Draws returns the number of DrawFilledCell calls.
func (d *FakeDisplay) Draws() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draws
}

// FakeInput is an Input whose levels are set directly.
type FakeInput struct {
	button atomic.Bool
	joy    [5]atomic.Bool
}

// SetButton sets the button level.
func (in *FakeInput) SetButton(down bool) {
	in.button.Store(down)
}

// SetJoystick sets the level of one joystick direction.
func (in *FakeInput) SetJoystick(d core.Direction, down bool) {
	if d.IsCardinal() {
		in.joy[d].Store(down)
	}
}

// IsButtonPressed returns the level set by SetButton.
func (in *FakeInput) IsButtonPressed() bool {
	return in.button.Load()
}

// IsJoystickAsserted returns the level set by SetJoystick.
func (in *FakeInput) IsJoystickAsserted(d core.Direction) bool {
	return d.IsCardinal() && in.joy[d].Load()
}

// FakeIndicator remembers the last mask.
type FakeIndicator struct {
	mask  atomic.Uint32
	calls atomic.Int64
}

// SetIndicator stores mask and counts the call.
func (f *FakeIndicator) SetIndicator(mask uint8) {
	f.mask.Store(uint32(mask))
	f.calls.Add(1)
}

// Mask returns the last mask set.
func (f *FakeIndicator) Mask() uint8 {
	return uint8(f.mask.Load())
}

// Calls returns how many updates were made.
func (f *FakeIndicator) Calls() int {
	return int(f.calls.Load())
}

// SeqRandom replays a fixed sequence modulo n.
type SeqRandom struct {
	mu   sync.Mutex
	vals []int
	i    int
}

// NewSeqRandom replays vals, or a single 0 when none are given.
func NewSeqRandom(vals ...int) *SeqRandom {
	if len(vals) == 0 {
		vals = []int{0}
	}
	return &SeqRandom{vals: vals}
}

// NextInRange returns the next value wrapped into [0, n).
func (r *SeqRandom) NextInRange(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return ((v % n) + n) % n
}
