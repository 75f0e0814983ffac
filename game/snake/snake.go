// Package snake is the tick-driven snake state machine.
package snake

import (
	"fmt"

	"snakeos/game/ringbuf"
	"snakeos/vga"
)

// MaxSize is the number of cells inside the playfield box.
const MaxSize = (vga.Height - 3) * (vga.Width - 2)

// Pixel is a display cell position.
type Pixel struct {
	Row, Col int
}

func (p Pixel) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Step returns the neighbouring pixel in direction d.
func (p Pixel) Step(d Direction) Pixel {
	switch d {
	case Left:
		p.Col--
	case Right:
		p.Col++
	case Up:
		p.Row--
	case Down:
		p.Row++
	}
	return p
}

type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	}
	return Up
}

// Outcome is the result of one tick.
type Outcome uint8

const (
	Moved Outcome = iota
	Grew
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "Moved"
	case Grew:
		return "Grew"
	case GameOver:
		return "GameOver"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// ScoreHandler is credited and redrawn when food is eaten.
type ScoreHandler interface {
	Increment()
	Render(d vga.Display)
}

// Random supplies food positions.
type Random interface {
	Next() uint64
}

// InitialFood is where the first food item is placed.
var InitialFood = Pixel{Row: 3, Col: 19}

// Snake owns its body storage. It must not be copied after New.
type Snake struct {
	storage [MaxSize]Pixel
	body    ringbuf.RingBuffer[Pixel]

	direction  Direction
	pending    Direction
	hasPending bool
	over       bool

	score ScoreHandler
	rng   Random
}

// New returns a three-cell snake in the middle of the screen, head first,
// moving Left.
func New(rng Random) *Snake {
	s := &Snake{direction: Left, rng: rng}
	s.body = ringbuf.New(s.storage[:])
	mid := Pixel{Row: vga.Height / 2, Col: vga.Width / 2}
	for i := 0; i < 3; i++ {
		s.body.Append(Pixel{Row: mid.Row, Col: mid.Col + i})
	}
	return s
}

// SetScoreHandler attaches the score. It must be set before the snake can
// reach food.
func (s *Snake) SetScoreHandler(h ScoreHandler) { s.score = h }

// SetTurnDirection records d for the next tick unless a turn is already
// pending.
func (s *Snake) SetTurnDirection(d Direction) {
	if s.hasPending {
		return
	}
	s.pending = d
	s.hasPending = true
}

func (s *Snake) Direction() Direction { return s.direction }
func (s *Snake) Len() int             { return s.body.Len() }
func (s *Snake) Head() Pixel          { return s.body.PeekFirst() }
func (s *Snake) Over() bool           { return s.over }

// Body returns a copy of the body, head first.
func (s *Snake) Body() []Pixel {
	out := make([]Pixel, 0, s.body.Len())
	for p := range s.body.All() {
		out = append(out, p)
	}
	return out
}

// Tick advances the snake one cell. A move into anything other than an
// empty cell or food ends the game; once over, Tick does nothing.
func (s *Snake) Tick(d vga.Display) Outcome {
	if s.over {
		return GameOver
	}

	dir := s.direction
	if s.hasPending && s.pending != dir.Opposite() {
		dir = s.pending
	}
	s.hasPending = false

	head := s.body.PeekFirst()
	next := head.Step(dir)
	outcome := s.resolve(d, next)
	if outcome == GameOver {
		s.over = true
		return GameOver
	}

	s.direction = dir
	s.body.Prepend(next)
	s.drawHead(d, next)
	s.drawSegment(d, next, head, s.body.PeekIth(2))

	if outcome == Moved {
		tail := s.body.PopLast()
		d.WriteCharAt(tail.Row, tail.Col, Empty)
		s.drawTail(d)
	}
	return outcome
}

func (s *Snake) resolve(d vga.Display, p Pixel) Outcome {
	if p.Row < 0 || p.Row >= d.Rows() || p.Col < 0 || p.Col >= d.Cols() {
		return GameOver
	}
	switch cell := d.ReadCharAt(p.Row, p.Col); {
	case cell.Equal(Empty):
		return Moved
	case cell.Equal(Food):
		if s.score == nil {
			panic("snake: score handler not set")
		}
		s.score.Increment()
		s.score.Render(d)
		s.PlaceFood(d)
		return Grew
	}
	return GameOver
}

// PlaceFood puts food on a random interior cell. Cells occupied by the
// body are not avoided.
func (s *Snake) PlaceFood(d vga.Display) Pixel {
	p := Pixel{
		Row: 2 + int(s.rng.Next()%uint64(d.Rows()-3)),
		Col: 1 + int(s.rng.Next()%uint64(d.Cols()-2)),
	}
	DrawFood(d, p)
	return p
}

// DrawFood puts food at p.
func DrawFood(d vga.Display, p Pixel) {
	d.WriteCharAt(p.Row, p.Col, Food)
}

// Draw redraws the whole body.
func (s *Snake) Draw(d vga.Display) {
	s.drawHead(d, s.body.PeekFirst())
	for w := range s.body.TripleIter() {
		s.drawSegment(d, w.Prev, w.Current, w.Next)
	}
	s.drawTail(d)
}

func (s *Snake) drawHead(d vga.Display, p Pixel) {
	d.WriteCharAt(p.Row, p.Col, headGlyph(s.direction))
}

func (s *Snake) drawSegment(d vga.Display, prev, cur, next Pixel) {
	g, ok := bodyGlyph(prev, cur, next)
	if !ok {
		panic(fmt.Sprintf("snake: unexpected sequence of pixels: %v %v %v", prev, cur, next))
	}
	d.WriteCharAt(cur.Row, cur.Col, g)
}

// drawTail draws the last cell as a straight piece toward its neighbour.
func (s *Snake) drawTail(d vga.Display) {
	tail := s.body.PeekLast()
	before := s.body.PeekIth(s.body.Len() - 2)
	g := HorizontalBody
	if before.Col == tail.Col {
		g = VerticalBody
	}
	d.WriteCharAt(tail.Row, tail.Col, g)
}
