//go:build !tinygo

package hal

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// RunTerminal shows the text display and the COM1 log in the terminal.
// It blocks until Ctrl-C.
func RunTerminal(ctx context.Context, boot Boot, cfg RunConfig) error {
	app := tview.NewApplication()

	logView := tview.NewTextView().
		SetMaxLines(1000).
		SetScrollable(true)
	logView.SetChangedFunc(func() { app.Draw() })
	logView.SetBorder(true).SetTitle(" COM1 ")

	h := newHostHAL(&hostLogger{w: logView})

	var cells []uint16
	display := tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		cells = h.text.Snapshot(cells)
		cols := h.text.Cols()
		for i, cell := range cells {
			row, col := i/cols, i%cols
			if row >= height || col >= width {
				continue
			}
			code, fg, bg := CellColors(cell)
			style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
			screen.SetContent(x+col, y+row, CellRune(code), nil, style)
		}
		return x, y, width, height
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(display, TextRows, 0, false).
		AddItem(logView, 0, 1, false)
	app.SetRoot(layout, true)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlC {
			app.Stop()
			return nil
		}
		if k, ok := terminalKey(ev); ok {
			h.chip.PushScancodes(Keystroke(k)...)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := startMachine(ctx, h, boot)

	go func() {
		timer := newHostTimer(h.chip, cfg.Hz)
		t := time.NewTicker(time.Second / 60)
		defer t.Stop()
		halted := false
		for {
			select {
			case <-ctx.Done():
				app.Stop()
				return
			case err := <-done:
				halted = true
				if err != nil {
					h.logger.WriteLineString("machine halted: " + err.Error())
				}
			case <-t.C:
				if !halted {
					timer.step()
				}
				app.QueueUpdateDraw(func() {})
			}
		}
	}()

	return app.Run()
}

func terminalKey(ev *tcell.EventKey) (KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyEvent{Code: KeyUp}, true
	case tcell.KeyDown:
		return KeyEvent{Code: KeyDown}, true
	case tcell.KeyLeft:
		return KeyEvent{Code: KeyLeft}, true
	case tcell.KeyRight:
		return KeyEvent{Code: KeyRight}, true
	case tcell.KeyEnter:
		return KeyEvent{Code: KeyEnter}, true
	case tcell.KeyEsc:
		return KeyEvent{Code: KeyEscape}, true
	case tcell.KeyTab:
		return KeyEvent{Code: KeyTab}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Code: KeyBackspace}, true
	case tcell.KeyDelete:
		return KeyEvent{Code: KeyDelete}, true
	case tcell.KeyHome:
		return KeyEvent{Code: KeyHome}, true
	case tcell.KeyEnd:
		return KeyEvent{Code: KeyEnd}, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return KeyEvent{Code: KeySpace}, true
		}
		return KeyEvent{Rune: ev.Rune()}, true
	}
	return KeyEvent{}, false
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
