package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snakeos/hal"
	"snakeos/vga"
)

func TestDrawBox(t *testing.T) {
	w := vga.NewWriter(hal.NewTextMemory(vga.Height, vga.Width), 0)
	w.Clear()
	Draw(w)

	code := func(row, col int) byte { return w.ReadCharAt(row, col).Code }
	assert.Equal(t, byte(TopLeft), code(1, 0))
	assert.Equal(t, byte(TopRight), code(1, 79))
	assert.Equal(t, byte(BottomLeft), code(24, 0))
	assert.Equal(t, byte(BottomRight), code(24, 79))
	assert.Equal(t, byte(Horizontal), code(1, 40))
	assert.Equal(t, byte(Horizontal), code(24, 1))
	assert.Equal(t, byte(Vertical), code(12, 0))
	assert.Equal(t, byte(Vertical), code(23, 79))

	for col := 0; col < vga.Width; col++ {
		assert.Equal(t, byte(' '), code(0, col), "score row must stay free")
	}
	assert.Equal(t, byte(' '), code(2, 1))
}
