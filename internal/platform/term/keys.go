package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/gridsnake/internal/core"
)

type keyAction int

const (
	keyNone keyAction = iota
	keyButton
	keySteer
	keyQuit
)

var arrowKeys = map[tcell.Key]core.Direction{
	tcell.KeyUp:    core.DirUp,
	tcell.KeyDown:  core.DirDown,
	tcell.KeyLeft:  core.DirLeft,
	tcell.KeyRight: core.DirRight,
}

var runeKeys = map[rune]core.Direction{
	'w': core.DirUp, 'k': core.DirUp,
	's': core.DirDown, 'j': core.DirDown,
	'a': core.DirLeft, 'h': core.DirLeft,
	'd': core.DirRight, 'l': core.DirRight,
}

// mapKey translates a tcell key into a board action.
func mapKey(k tcell.Key, r rune) (keyAction, core.Direction) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyQuit, core.DirNone
	case tcell.KeyEnter:
		return keyButton, core.DirNone
	case tcell.KeyRune:
		switch r {
		case 'q':
			return keyQuit, core.DirNone
		case ' ':
			return keyButton, core.DirNone
		}
		if d, ok := runeKeys[r]; ok {
			return keySteer, d
		}
		return keyNone, core.DirNone
	}
	if d, ok := arrowKeys[k]; ok {
		return keySteer, d
	}
	return keyNone, core.DirNone
}
