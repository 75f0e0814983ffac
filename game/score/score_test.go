package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"snakeos/hal"
	"snakeos/vga"
)

func topRow(w *vga.Writer) string {
	var b strings.Builder
	for col := 0; col < w.Cols(); col++ {
		b.WriteByte(w.ReadCharAt(Row, col).Code)
	}
	return b.String()
}

func TestRenderRightAligned(t *testing.T) {
	w := vga.NewWriter(hal.NewTextMemory(vga.Height, vga.Width), vga.NewColorCode(vga.White, vga.Black))
	w.Clear()
	s := New(0)

	s.Render(w)
	assert.Equal(t, 68, Col)
	assert.Equal(t, "SCORE:     0", topRow(w)[Col:])

	for i := 0; i < 1234; i++ {
		s.Increment()
	}
	s.Render(w)
	assert.Equal(t, uint16(1234), s.Value())
	assert.Equal(t, "SCORE:  1234", topRow(w)[Col:])
	assert.Equal(t, strings.Repeat(" ", Col), topRow(w)[:Col])
}
