package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeos/game/boundary"
	"snakeos/hal"
	"snakeos/vga"
)

type seq []uint64

func (s *seq) Next() uint64 {
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

type counter struct {
	n        int
	rendered int
}

func (c *counter) Increment()         { c.n++ }
func (c *counter) Render(vga.Display) { c.rendered++ }

func newBoard(t *testing.T) *vga.Writer {
	t.Helper()
	w := vga.NewWriter(hal.NewTextMemory(vga.Height, vga.Width), vga.NewColorCode(vga.White, vga.Black))
	w.Clear()
	boundary.Draw(w)
	return w
}

func TestInitialState(t *testing.T) {
	s := New(&seq{})
	assert.Equal(t, []Pixel{{12, 40}, {12, 41}, {12, 42}}, s.Body())
	assert.Equal(t, Left, s.Direction())
	assert.Equal(t, 78*22, MaxSize)
}

func TestDrawInitialBody(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)
	assert.Equal(t, HeadLeft.Code, w.ReadCharAt(12, 40).Code)
	assert.Equal(t, HorizontalBody.Code, w.ReadCharAt(12, 41).Code)
	assert.Equal(t, HorizontalBody.Code, w.ReadCharAt(12, 42).Code)
}

func TestTickMovesLeft(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)

	require.Equal(t, Moved, s.Tick(w))
	assert.Equal(t, []Pixel{{12, 39}, {12, 40}, {12, 41}}, s.Body())
	assert.Equal(t, HeadLeft.Code, w.ReadCharAt(12, 39).Code)
	assert.Equal(t, HorizontalBody.Code, w.ReadCharAt(12, 40).Code)
	assert.Equal(t, HorizontalBody.Code, w.ReadCharAt(12, 41).Code)
	assert.True(t, w.ReadCharAt(12, 42).Equal(Empty))
}

func TestOppositeTurnIgnored(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)

	s.SetTurnDirection(Right)
	require.Equal(t, Moved, s.Tick(w))
	assert.Equal(t, Left, s.Direction())
	assert.Equal(t, Pixel{12, 39}, s.Head())
}

func TestTurnUpDrawsCorner(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)

	s.SetTurnDirection(Up)
	require.Equal(t, Moved, s.Tick(w))
	assert.Equal(t, Up, s.Direction())
	assert.Equal(t, []Pixel{{11, 40}, {12, 40}, {12, 41}}, s.Body())
	assert.Equal(t, HeadUp.Code, w.ReadCharAt(11, 40).Code)
	assert.Equal(t, UpRight.Code, w.ReadCharAt(12, 40).Code)
	assert.Equal(t, HorizontalBody.Code, w.ReadCharAt(12, 41).Code)

	s.SetTurnDirection(Left)
	require.Equal(t, Moved, s.Tick(w))
	assert.Equal(t, DownLeft.Code, w.ReadCharAt(11, 40).Code)
	assert.Equal(t, VerticalBody.Code, w.ReadCharAt(12, 40).Code, "tail points at its neighbour")
}

func TestPendingTurnKeepsFirst(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)

	s.SetTurnDirection(Up)
	s.SetTurnDirection(Down)
	s.Tick(w)
	assert.Equal(t, Up, s.Direction())

	// Cleared by the tick.
	s.Tick(w)
	assert.Equal(t, Up, s.Direction())
	assert.Equal(t, Pixel{10, 40}, s.Head())
}

func TestEatFood(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{5, 7})
	score := &counter{}
	s.SetScoreHandler(score)
	s.Draw(w)
	DrawFood(w, Pixel{12, 39})

	require.Equal(t, Grew, s.Tick(w))
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []Pixel{{12, 39}, {12, 40}, {12, 41}, {12, 42}}, s.Body())
	assert.Equal(t, 1, score.n)
	assert.Equal(t, 1, score.rendered)
	assert.True(t, w.ReadCharAt(7, 8).Equal(Food))
}

func TestFoodStaysInside(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{21, 77, 22, 78})
	p := s.PlaceFood(w)
	assert.Equal(t, Pixel{23, 78}, p)
	p = s.PlaceFood(w)
	assert.Equal(t, Pixel{2, 1}, p)
}

func TestFoodWithoutScorePanics(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{0, 0})
	s.Draw(w)
	DrawFood(w, Pixel{12, 39})
	assert.Panics(t, func() { s.Tick(w) })
}

func TestWallCollision(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.Draw(w)

	var out Outcome
	for i := 0; i < 100 && out != GameOver; i++ {
		out = s.Tick(w)
	}
	require.Equal(t, GameOver, out)
	assert.Equal(t, Pixel{12, 1}, s.Head())
	assert.True(t, s.Over())
	assert.Equal(t, GameOver, s.Tick(w))
	assert.Equal(t, Pixel{12, 1}, s.Head())
}

func TestSelfCollision(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{0, 0, 0, 0})
	s.SetScoreHandler(&counter{})
	s.Draw(w)
	DrawFood(w, Pixel{12, 39})
	DrawFood(w, Pixel{12, 38})
	s.Tick(w)
	s.Tick(w)
	require.Equal(t, 5, s.Len())

	s.SetTurnDirection(Up)
	require.Equal(t, Moved, s.Tick(w))
	s.SetTurnDirection(Right)
	require.Equal(t, Moved, s.Tick(w))
	s.SetTurnDirection(Down)
	assert.Equal(t, GameOver, s.Tick(w))
}

func TestOutsideDisplayIsGameOver(t *testing.T) {
	w := vga.NewWriter(hal.NewTextMemory(vga.Height, vga.Width), 0)
	w.Clear()
	s := New(&seq{})
	s.SetTurnDirection(Up)
	var out Outcome
	for i := 0; i < 20 && out != GameOver; i++ {
		out = s.Tick(w)
	}
	assert.Equal(t, GameOver, out)
	assert.Equal(t, Pixel{0, 40}, s.Head())
}

func TestBodyGlyph(t *testing.T) {
	cases := []struct {
		prev, cur, next Pixel
		want            vga.ScreenChar
	}{
		{Pixel{4, 5}, Pixel{5, 5}, Pixel{6, 5}, VerticalBody},
		{Pixel{5, 4}, Pixel{5, 5}, Pixel{5, 6}, HorizontalBody},
		{Pixel{5, 4}, Pixel{5, 5}, Pixel{4, 5}, UpLeft},
		{Pixel{5, 4}, Pixel{5, 5}, Pixel{6, 5}, DownLeft},
		{Pixel{4, 5}, Pixel{5, 5}, Pixel{5, 6}, UpRight},
		{Pixel{6, 5}, Pixel{5, 5}, Pixel{5, 4}, DownLeft},
	}
	for _, c := range cases {
		got, ok := bodyGlyph(c.prev, c.cur, c.next)
		require.True(t, ok, "%v %v %v", c.prev, c.cur, c.next)
		assert.Equal(t, c.want.Code, got.Code, "%v %v %v", c.prev, c.cur, c.next)
	}

	_, ok := bodyGlyph(Pixel{5, 5}, Pixel{5, 5}, Pixel{5, 5})
	assert.False(t, ok)
}

func TestDrawRejectsBrokenBody(t *testing.T) {
	w := newBoard(t)
	s := New(&seq{})
	s.body.PopLast()
	s.body.Append(Pixel{20, 20})
	assert.PanicsWithValue(t,
		"snake: unexpected sequence of pixels: (12,40) (12,41) (20,20)",
		func() { s.Draw(w) })
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, "Up", Up.String())
	assert.Equal(t, Pixel{3, 4}, Pixel{3, 5}.Step(Left))
	assert.Equal(t, Pixel{4, 5}, Pixel{3, 5}.Step(Down))
}
