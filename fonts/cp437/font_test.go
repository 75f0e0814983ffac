package cp437

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"tinygo.org/x/tinyfont"
)

type point struct{ x, y int16 }

type canvas struct {
	set map[point]bool
}

func newCanvas() *canvas { return &canvas{set: map[point]bool{}} }

func (c *canvas) Size() (int16, int16) { return 64, 64 }

func (c *canvas) SetPixel(x, y int16, _ color.RGBA) { c.set[point{x, y}] = true }

func (c *canvas) Display() error { return nil }

func draw(r rune) *canvas {
	c := newCanvas()
	tinyfont.DrawChar(c, Font, 8, 8+Ascent, r, color.RGBA{A: 255})
	return c
}

func inCell(c *canvas) bool {
	for p := range c.set {
		if p.x < 8 || p.x >= 8+CellWidth || p.y < 8 || p.y >= 8+CellHeight {
			return false
		}
	}
	return true
}

func TestBoxGlyphsStayInCell(t *testing.T) {
	for _, r := range "─│┌┐└┘►◄▲▼♥A?" {
		c := draw(r)
		assert.NotEmpty(t, c.set, "%q draws nothing", r)
		assert.True(t, inCell(c), "%q leaves its cell", r)
	}
}

func TestLinesJoinNeighbours(t *testing.T) {
	h := draw('─')
	midY := int16(8 + CellHeight/2)
	assert.True(t, h.set[point{8, midY}])
	assert.True(t, h.set[point{8 + CellWidth - 1, midY}])

	v := draw('│')
	midX := int16(8 + CellWidth/2 - 1)
	assert.True(t, v.set[point{midX, 8}])
	assert.True(t, v.set[point{midX, 8 + CellHeight - 1}])
}

func TestSpaceIsBlank(t *testing.T) {
	assert.Empty(t, draw(' ').set)
	assert.Equal(t, uint8(CellHeight), Font.GetYAdvance())
}
