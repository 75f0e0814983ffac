package vga

import (
	"fmt"

	"snakeos/hal"
)

// Writer writes cells into text memory. Its console output goes to the
// bottom row and scrolls the whole screen up on newline.
type Writer struct {
	buf   hal.TextBuffer
	color ColorCode
	col   int
}

var _ Display = (*Writer)(nil)

func NewWriter(buf hal.TextBuffer, color ColorCode) *Writer {
	return &Writer{buf: buf, color: color}
}

func (w *Writer) Rows() int { return w.buf.Rows() }
func (w *Writer) Cols() int { return w.buf.Cols() }

// SetColor changes the colour used by console and string output.
func (w *Writer) SetColor(c ColorCode) { w.color = c }

func (w *Writer) Color() ColorCode { return w.color }

func (w *Writer) WriteCharAt(row, col int, c ScreenChar) {
	w.check(row, col)
	w.buf.WriteCell(row, col, c.cell())
}

func (w *Writer) ReadCharAt(row, col int) ScreenChar {
	w.check(row, col)
	return charFromCell(w.buf.ReadCell(row, col))
}

func (w *Writer) check(row, col int) {
	if row < 0 || row >= w.Rows() || col < 0 || col >= w.Cols() {
		panic(fmt.Sprintf("vga: cell (%d, %d) outside %dx%d", row, col, w.Rows(), w.Cols()))
	}
}

// Clear blanks every cell and resets the console column.
func (w *Writer) Clear() {
	for row := 0; row < w.Rows(); row++ {
		w.ClearRow(row)
	}
	w.col = 0
}

func (w *Writer) ClearRow(row int) {
	blank := ScreenChar{Code: ' ', Color: w.color}
	for col := 0; col < w.Cols(); col++ {
		w.WriteCharAt(row, col, blank)
	}
}

// WriteStringAt writes s at (row, col), truncated at the end of the row.
func (w *Writer) WriteStringAt(row, col int, s string) {
	PutString(w, row, col, s, w.color)
}

// WriteByte appends b to the console line.
func (w *Writer) WriteByte(b byte) error {
	if b == '\n' {
		w.newLine()
		return nil
	}
	if w.col >= w.Cols() {
		w.newLine()
	}
	w.WriteCharAt(w.Rows()-1, w.col, ScreenChar{Code: b, Color: w.color})
	w.col++
	return nil
}

// WriteString writes s to the console. Characters outside printable ASCII
// are shown as a block.
func (w *Writer) WriteString(s string) (int, error) {
	for _, r := range s {
		if r == '\n' {
			w.newLine()
			continue
		}
		w.WriteByte(printable(r))
	}
	return len(s), nil
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteString(string(p))
}

func (w *Writer) newLine() {
	for row := 1; row < w.Rows(); row++ {
		for col := 0; col < w.Cols(); col++ {
			w.buf.WriteCell(row-1, col, w.buf.ReadCell(row, col))
		}
	}
	w.ClearRow(w.Rows() - 1)
	w.col = 0
}
