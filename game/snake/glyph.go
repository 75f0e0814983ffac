package snake

import "snakeos/vga"

var (
	white = vga.NewColorCode(vga.White, vga.Black)

	HeadLeft  = vga.ScreenChar{Code: 17, Color: white}
	HeadRight = vga.ScreenChar{Code: 16, Color: white}
	HeadUp    = vga.ScreenChar{Code: 30, Color: white}
	HeadDown  = vga.ScreenChar{Code: 31, Color: white}

	HorizontalBody = vga.ScreenChar{Code: 196, Color: white}
	VerticalBody   = vga.ScreenChar{Code: 179, Color: white}

	// Corners, named by the two neighbours the cell connects.
	UpLeft    = vga.ScreenChar{Code: 217, Color: white}
	DownLeft  = vga.ScreenChar{Code: 191, Color: white}
	UpRight   = vga.ScreenChar{Code: 192, Color: white}
	DownRight = vga.ScreenChar{Code: 218, Color: white}

	Empty = vga.ScreenChar{Code: 32, Color: vga.NewColorCode(vga.Black, vga.Black)}
	Food  = vga.ScreenChar{Code: 3, Color: vga.NewColorCode(vga.Red, vga.Black)}
)

func headGlyph(d Direction) vga.ScreenChar {
	switch d {
	case Right:
		return HeadRight
	case Up:
		return HeadUp
	case Down:
		return HeadDown
	}
	return HeadLeft
}

// window is the signed deltas (next-cur row, cur-prev row, next-cur col,
// cur-prev col) of three consecutive body cells, prev nearest the head.
type window struct {
	nextRow, prevRow, nextCol, prevCol int
}

var bodyGlyphs = map[window]vga.ScreenChar{
	{-1, 0, 0, 1}:  UpLeft,
	{1, 0, 0, 1}:   DownLeft,
	{-1, 0, 0, -1}: UpRight,
	{1, 0, 0, -1}:  DownRight,
	{0, 1, -1, 0}:  UpLeft,
	{0, 1, 1, 0}:   UpRight,
	{0, -1, -1, 0}: DownLeft,
	{0, -1, 1, 0}:  DownRight,
	{0, 0, 1, 1}:   HorizontalBody,
	{0, 0, -1, -1}: HorizontalBody,
	{1, 1, 0, 0}:   VerticalBody,
	{-1, -1, 0, 0}: VerticalBody,
}

// bodyGlyph classifies the cell cur between prev and next. It reports
// false for cells that are not contiguous.
func bodyGlyph(prev, cur, next Pixel) (vga.ScreenChar, bool) {
	g, ok := bodyGlyphs[window{
		nextRow: next.Row - cur.Row,
		prevRow: cur.Row - prev.Row,
		nextCol: next.Col - cur.Col,
		prevCol: cur.Col - prev.Col,
	}]
	return g, ok
}
