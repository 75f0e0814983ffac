package hal

import "sync"

const (
	TextRows = 25
	TextCols = 80
)

// TextMemory is an in-memory TextBuffer.
//
// It stands in for the VGA text memory on the host and in tests.
type TextMemory struct {
	mu    sync.Mutex
	rows  int
	cols  int
	cells []uint16
}

// NewTextMemory returns a rows x cols text buffer filled with zero cells.
func NewTextMemory(rows, cols int) *TextMemory {
	return &TextMemory{
		rows:  rows,
		cols:  cols,
		cells: make([]uint16, rows*cols),
	}
}

func (m *TextMemory) Rows() int { return m.rows }
func (m *TextMemory) Cols() int { return m.cols }

func (m *TextMemory) ReadCell(row, col int) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[m.index(row, col)]
}

func (m *TextMemory) WriteCell(row, col int, v uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[m.index(row, col)] = v
}

// Snapshot copies all cells, row-major, into dst and returns it.
func (m *TextMemory) Snapshot(dst []uint16) []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cap(dst) < len(m.cells) {
		dst = make([]uint16, len(m.cells))
	}
	dst = dst[:len(m.cells)]
	copy(dst, m.cells)
	return dst
}

func (m *TextMemory) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic("hal: text cell out of range")
	}
	return row*m.cols + col
}
