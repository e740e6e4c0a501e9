package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Body invariant violations.
var (
	ErrBodyTooShort  = errors.New("snake: body shorter than two cells")
	ErrDuplicateCell = errors.New("snake: body occupies a cell twice")
	ErrDisjointBody  = errors.New("snake: body cells not adjacent")
)

// MinLength is the length of a freshly reset snake and the floor no legal
// operation goes below.
const MinLength = 2

// Body is the ordered run of cells occupied by the snake, tail first and head
// last. The zero value is not usable; build one with NewBody.
type Body struct {
	cells []core.Cell
}

// NewBody builds the two-cell starting snake: head at head, tail one cell to
// its left, implicitly facing right.
func NewBody(head core.Cell) Body {
	return Body{cells: []core.Cell{head.Add(-1, 0), head}}
}

// BodyOf builds a body from cells listed tail first. It panics on fewer than
// MinLength cells.
func BodyOf(cells ...core.Cell) Body {
	b := Body{cells: append([]core.Cell(nil), cells...)}
	b.mustHold()
	return b
}

// mustHold panics if the length invariant is broken. No sequence of
// operations on a Body can trigger it.
func (b Body) mustHold() {
	if len(b.cells) < MinLength {
		panic(fmt.Errorf("%w (len %d)", ErrBodyTooShort, len(b.cells)))
	}
}

// Len returns the number of cells.
func (b Body) Len() int {
	return len(b.cells)
}

// Head returns the leading cell.
func (b Body) Head() core.Cell {
	b.mustHold()
	return b.cells[len(b.cells)-1]
}

// Tail returns the trailing cell.
func (b Body) Tail() core.Cell {
	b.mustHold()
	return b.cells[0]
}

// Cells returns a copy of the cells, tail first.
func (b Body) Cells() []core.Cell {
	return append([]core.Cell(nil), b.cells...)
}

// Clone returns a body that shares no storage with b.
func (b Body) Clone() Body {
	return Body{cells: b.Cells()}
}

// Contains reports whether any cell of the body is c.
func (b Body) Contains(c core.Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance moves the snake one cell in direction d. Every cell takes its
// successor's position and the head steps forward. The receiver is left
// untouched; the vacated tail cell is returned so callers can erase it or
// grow into it.
func (b Body) Advance(d core.Direction) (Body, core.Cell) {
	b.mustHold()

	n := len(b.cells)
	next := make([]core.Cell, n, n+1)
	copy(next, b.cells[1:])
	next[n-1] = b.cells[n-1].Step(d)

	return Body{cells: next}, b.cells[0]
}

// Grow prepends a tail cell at the given cell, normally the one vacated by
// the preceding Advance.
func (b *Body) Grow(at core.Cell) {
	b.cells = append(b.cells, core.Cell{})
	copy(b.cells[1:], b.cells)
	b.cells[0] = at
}

// ContainsHeadCollision reports whether the head overlaps any other cell.
func (b Body) ContainsHeadCollision() bool {
	b.mustHold()

	head := b.cells[len(b.cells)-1]
	for _, seg := range b.cells[:len(b.cells)-1] {
		if seg == head {
			return true
		}
	}
	return false
}

// HitsWall reports whether the next step in direction d would leave the
// grid. A head already on the boundary moving further out is a collision.
func (b Body) HitsWall(g core.Grid, d core.Direction) bool {
	if !d.IsCardinal() {
		return false
	}
	return !g.Contains(b.Head().Step(d))
}

// Check validates the body invariants: minimum length, unique cells and
// orthogonal adjacency between neighbours.
func (b Body) Check() error {
	if len(b.cells) < MinLength {
		return ErrBodyTooShort
	}

	seen := make(map[core.Cell]struct{}, len(b.cells))
	for i, c := range b.cells {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %v", ErrDuplicateCell, c)
		}
		seen[c] = struct{}{}
		if i > 0 && !b.cells[i-1].Adjacent(c) {
			return fmt.Errorf("%w: %v and %v", ErrDisjointBody, b.cells[i-1], c)
		}
	}
	return nil
}
