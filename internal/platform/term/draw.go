package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// canvas is the part of tcell.Screen the drawing code needs.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	valueStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	lampOn      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	lampOff     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// colorStyle maps core.Color onto a tcell style.
func colorStyle(c core.Color) tcell.Style {
	switch c {
	case core.ColorGreen:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case core.ColorBrightGreen:
		return tcell.StyleDefault.Foreground(tcell.ColorLime)
	case core.ColorRed:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case core.ColorYellow:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case core.ColorWhite:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	case core.ColorGray:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func drawText(c canvas, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawBoard draws the framebuffer inside a border with its top-left corner at (0, 0).
func drawBoard(c canvas, fb *core.Screen) {
	w, h := fb.Width(), fb.Height()

	c.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	c.SetContent(w+1, 0, tcell.RuneURCorner, nil, borderStyle)
	c.SetContent(0, h+1, tcell.RuneLLCorner, nil, borderStyle)
	c.SetContent(w+1, h+1, tcell.RuneLRCorner, nil, borderStyle)
	for x := 1; x <= w; x++ {
		c.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		c.SetContent(x, h+1, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y <= h; y++ {
		c.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		c.SetContent(w+1, y, tcell.RuneVLine, nil, borderStyle)
	}

	for y := range h {
		for x := range w {
			g := fb.GetGlyph(x, y)
			c.SetContent(x+1, y+1, g.Rune, nil, colorStyle(g.Color))
		}
	}
}

// status is what the side panel shows.
type status struct {
	snap  snake.Snapshot
	best  int
	lamps uint8
}

// drawPanel draws the status panel starting at column x.
func drawPanel(c canvas, x int, st status) {
	rows := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", st.snap.Score)},
		{"Best", fmt.Sprintf("%d", max(st.best, st.snap.Score))},
		{"Length", fmt.Sprintf("%d", len(st.snap.Body))},
		{"State", phaseLabel(st.snap.Phase)},
	}
	for i, r := range rows {
		drawText(c, x, i+1, labelStyle, r.label)
		drawText(c, x+8, i+1, valueStyle, r.value)
	}

	drawText(c, x, len(rows)+2, labelStyle, "Lamps")
	for i := range 8 {
		style, r := lampOff, '○'
		if st.lamps&(1<<uint(7-i)) != 0 {
			style, r = lampOn, '●'
		}
		c.SetContent(x+i*2, len(rows)+3, r, nil, style)
	}

	drawText(c, x, len(rows)+5, labelStyle, "space  button")
	drawText(c, x, len(rows)+6, labelStyle, "arrows steer")
	drawText(c, x, len(rows)+7, labelStyle, "q      quit")
}

func phaseLabel(p snake.Phase) string {
	switch p {
	case snake.PhaseRunning:
		return "RUNNING"
	case snake.PhasePaused:
		return "PAUSED"
	case snake.PhaseGameOver:
		return "GAME OVER"
	default:
		return "IDLE"
	}
}
