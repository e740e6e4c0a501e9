package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Snapshot is an immutable copy of the game state handed to readers.
type Snapshot struct {
	Body       []core.Cell // Tail first, head last
	Apple      core.Cell
	HasApple   bool
	Score      int
	Dir        core.Direction
	Phase      Phase
	Ticks      uint64  // Committed moves since the last reset
	Generation uint64  // Incremented by every reset
	Reason     Outcome // Why the last game ended; OutcomeNone while playing
}

// Head returns the snake's head cell.
func (s Snapshot) Head() core.Cell {
	if len(s.Body) == 0 {
		return core.Cell{}
	}
	return s.Body[len(s.Body)-1]
}

// Occupies reports whether the body covers c.
func (s Snapshot) Occupies(c core.Cell) bool {
	for _, seg := range s.Body {
		if seg == c {
			return true
		}
	}
	return false
}

// DebugState returns a one-screen description of the state.
func (s Snapshot) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Phase: %s, Ticks: %d, Score: %d\n", s.Phase, s.Ticks, s.Score)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(s.Body), s.Dir)
	fmt.Fprintf(&b, "Head: (%d, %d), Apple: (%d, %d)\n", s.Head().Col, s.Head().Row, s.Apple.Col, s.Apple.Row)
	if s.Reason != OutcomeNone {
		fmt.Fprintf(&b, "Ended: %s\n", s.Reason)
	}
	return b.String()
}
