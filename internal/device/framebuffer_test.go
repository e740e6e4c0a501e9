package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/gridsnake/internal/core"
)

func row(s *core.Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

func TestFramebufferSize(t *testing.T) {
	fb := NewFramebuffer(core.DefaultGrid(), 16, 24)
	s, _ := fb.Snapshot()

	assert.Equal(t, 32, s.Width())
	assert.Equal(t, 12, s.Height())
}

func TestFramebufferCells(t *testing.T) {
	fb := NewFramebuffer(core.DefaultGrid(), 16, 24)

	fb.DrawFilledCell(140, 120, 20, 20, core.IntensityBody)
	fb.DrawFilledCell(0, 0, 20, 20, core.IntensityApple)
	s, _ := fb.Snapshot()

	assert.Equal(t, '█', s.GetGlyph(14, 6).Rune)
	assert.Equal(t, '█', s.GetGlyph(15, 6).Rune)
	assert.Equal(t, core.ColorBrightGreen, s.GetGlyph(14, 6).Color)
	assert.Equal(t, "()", row(s, 0)[:2])
	assert.Equal(t, core.ColorRed, s.GetGlyph(0, 0).Color)

	fb.DrawFilledCell(140, 120, 20, 20, core.IntensityErase)
	s, _ = fb.Snapshot()
	assert.Equal(t, ' ', s.GetGlyph(14, 6).Rune)
	assert.Equal(t, ' ', s.GetGlyph(15, 6).Rune)
}

func TestFramebufferText(t *testing.T) {
	fb := NewFramebuffer(core.DefaultGrid(), 16, 24)

	fb.DrawText(3, 0, "Push button to start")
	fb.DrawText(1, 7, "SNAKE")
	s, _ := fb.Snapshot()

	assert.True(t, strings.HasPrefix(row(s, 3), "Push button to start"))
	// Column 7 of a 16 pixel font is pixel 112, cell 5.6, terminal column 11.
	assert.Equal(t, "SNAKE", row(s, 1)[11:16])
}

func TestFramebufferVersion(t *testing.T) {
	fb := NewFramebuffer(core.DefaultGrid(), 16, 24)
	v0 := fb.Version()

	fb.ClearScreen()
	_, v1 := fb.Snapshot()
	assert.Greater(t, v1, v0)

	snap, _ := fb.Snapshot()
	snap.SetGlyph(0, 0, core.Glyph{Rune: 'x'})
	s, _ := fb.Snapshot()
	assert.Equal(t, ' ', s.GetGlyph(0, 0).Rune, "snapshot does not alias")
}
