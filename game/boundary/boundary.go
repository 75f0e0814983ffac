// Package boundary draws the playfield box. Row 0 stays free for the
// score.
package boundary

import "snakeos/vga"

// CP437 box drawing code points.
const (
	TopLeft     = 218
	TopRight    = 191
	BottomLeft  = 192
	BottomRight = 217
	Horizontal  = 196
	Vertical    = 179
)

const (
	FirstRow = 1
	FirstCol = 0
)

// Draw writes the box on rows 1 and Rows()-1 and the first and last
// columns.
func Draw(d vga.Display) {
	color := vga.NewColorCode(vga.White, vga.Black)
	put := func(row, col int, code byte) {
		d.WriteCharAt(row, col, vga.ScreenChar{Code: code, Color: color})
	}
	lastRow, lastCol := d.Rows()-1, d.Cols()-1

	put(FirstRow, FirstCol, TopLeft)
	put(FirstRow, lastCol, TopRight)
	put(lastRow, FirstCol, BottomLeft)
	put(lastRow, lastCol, BottomRight)
	for col := FirstCol + 1; col < lastCol; col++ {
		put(FirstRow, col, Horizontal)
		put(lastRow, col, Horizontal)
	}
	for row := FirstRow + 1; row < lastRow; row++ {
		put(row, FirstCol, Vertical)
		put(row, lastCol, Vertical)
	}
}
