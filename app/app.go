// Package app assembles the machine: drivers, interrupt handlers and the
// game, in boot order.
package app

import (
	"context"
	"fmt"

	"snakeos/cmos"
	"snakeos/game/boundary"
	"snakeos/game/prng"
	"snakeos/game/score"
	"snakeos/game/snake"
	"snakeos/hal"
	"snakeos/internal/buildinfo"
	"snakeos/kernel"
	"snakeos/ps2"
	"snakeos/serial"
	"snakeos/vga"
)

// GameOverMessage is shown on the score row when the snake collides.
const GameOverMessage = "GAME OVER - press ENTER"

// DefaultTimerHz is the PIT rate when Config.TimerHz is zero.
const DefaultTimerHz = 10

type Config struct {
	// TimerHz is the programmed timer interrupt rate, one snake step per
	// interrupt.
	TimerHz uint32
}

// Machine holds everything the interrupt handlers share.
type Machine struct {
	cfg Config

	log    *serial.Port
	cpu    *kernel.CPU
	ints   *kernel.Interrupts
	screen *vga.Screen
	rng    *prng.Source

	// game guards the fields below. It is taken inside screen.Do or with
	// interrupts masked.
	game  kernel.SpinLock
	snake *snake.Snake
	score *score.Score
	over  bool
	ticks uint64
}

// Boot returns the hal.Boot for cfg.
func Boot(cfg Config) hal.Boot {
	return func(h hal.HAL) func(ctx context.Context) error {
		return New(h, cfg).Run
	}
}

// New boots a machine on h. Interrupts are enabled last, once every
// handler's state exists.
func New(h hal.HAL, cfg Config) *Machine {
	if cfg.TimerHz == 0 {
		cfg.TimerHz = DefaultTimerHz
	}
	ports := h.Ports()
	m := &Machine{cfg: cfg}

	m.cpu = kernel.NewCPU(h.Interrupts())
	m.log = serial.New(ports, hal.PortCOM1, m.cpu)
	m.log.Init()
	m.log.WriteLineString("snakeos " + buildinfo.Short())

	m.cpu.SetFatalHandler(m.fatal)
	m.screen = vga.NewScreen(vga.NewWriter(h.Text(), vga.NewColorCode(vga.White, vga.Black)), m.cpu)
	m.rng = prng.NewSource(cmos.New(ports).Seed)
	m.screen.Do(m.newGame)

	divisor := kernel.SetTimerFrequency(ports, cfg.TimerHz)
	m.log.WriteLineString(fmt.Sprintf("timer: %d Hz (divisor %d)", cfg.TimerHz, divisor))

	m.ints = kernel.NewInterrupts(m.cpu, ports, m.log, kernel.Handlers{
		Timer: m.onTimer,
		Key:   m.onKey,
	})
	m.ints.Init()
	m.log.WriteLineString("interrupts enabled")
	return m
}

// Run is the halt loop. It returns kernel.ErrHalted after a fatal fault.
func (m *Machine) Run(ctx context.Context) error {
	return m.cpu.Run(ctx)
}

func (m *Machine) CPU() *kernel.CPU { return m.cpu }

func (m *Machine) Interrupts() *kernel.Interrupts { return m.ints }

// Score returns the current score.
func (m *Machine) Score() uint16 {
	var v uint16
	m.withGame(func() { v = m.score.Value() })
	return v
}

// Over reports whether the current game has ended.
func (m *Machine) Over() bool {
	var over bool
	m.withGame(func() { over = m.over })
	return over
}

// Ticks returns the number of timer interrupts handled.
func (m *Machine) Ticks() uint64 {
	var n uint64
	m.withGame(func() { n = m.ticks })
	return n
}

func (m *Machine) withGame(fn func()) {
	m.cpu.WithoutInterrupts(func() {
		m.game.Lock()
		defer m.game.Unlock()
		fn()
	})
}

// newGame draws an empty playfield with a fresh snake. The caller holds
// the screen.
func (m *Machine) newGame(w *vga.Writer) {
	m.game.Lock()
	defer m.game.Unlock()

	w.Clear()
	m.score = score.New(0)
	m.score.Render(w)
	boundary.Draw(w)

	m.snake = snake.New(m.rng)
	m.snake.Draw(w)
	snake.DrawFood(w, snake.InitialFood)
	m.snake.SetScoreHandler(m.score)
	m.over = false
}

func (m *Machine) onTimer() {
	m.screen.Do(func(w *vga.Writer) {
		m.game.Lock()
		defer m.game.Unlock()

		m.ticks++
		if m.over {
			return
		}
		if m.snake.Tick(w) != snake.GameOver {
			return
		}
		m.over = true
		w.ClearRow(score.Row)
		vga.PutString(w, score.Row, 0, GameOverMessage, vga.NewColorCode(vga.LightRed, vga.Black))
		m.score.Render(w)
		m.log.WriteLineString(fmt.Sprintf("game over: score %d, length %d", m.score.Value(), m.snake.Len()))
	})
}

var arrows = map[ps2.KeyCode]snake.Direction{
	ps2.KeyArrowLeft:  snake.Left,
	ps2.KeyArrowRight: snake.Right,
	ps2.KeyArrowUp:    snake.Up,
	ps2.KeyArrowDown:  snake.Down,
}

func (m *Machine) onKey(k ps2.DecodedKey) {
	if d, ok := arrows[k.Code]; ok {
		m.withGame(func() { m.snake.SetTurnDirection(d) })
		return
	}
	if k.Code != ps2.KeyEnter {
		return
	}
	m.screen.Do(func(w *vga.Writer) {
		m.game.Lock()
		over := m.over
		m.game.Unlock()
		if over {
			m.newGame(w)
			m.log.WriteLineString("new game")
		}
	})
}
