// Package score keeps and draws the score in the top-right corner.
package score

import "snakeos/vga"

const (
	Row   = 0
	Label = "SCORE: "
	// Col leaves room for the label and five digits.
	Col = vga.Width - len(Label) - digits

	digits = 5
)

type Score struct {
	value uint16
	color vga.ColorCode
}

func New(initial uint16) *Score {
	return &Score{value: initial, color: vga.NewColorCode(vga.White, vga.Black)}
}

func (s *Score) Increment() { s.value++ }

func (s *Score) Value() uint16 { return s.value }

// Render draws the label and the value right-aligned to the last column.
func (s *Score) Render(d vga.Display) {
	vga.PutString(d, Row, Col, Label, s.color)
	last := d.Cols() - 1
	for i := 0; i < digits; i++ {
		d.WriteCharAt(Row, last-i, vga.ScreenChar{Code: ' ', Color: s.color})
	}
	v := s.value
	for i := 0; i == 0 || v > 0; i++ {
		d.WriteCharAt(Row, last-i, vga.ScreenChar{Code: '0' + byte(v%10), Color: s.color})
		v /= 10
	}
}
