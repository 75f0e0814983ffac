//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RunHeadless runs the machine without a display, driving the timer from a
// wall-clock ticker and replaying scripted key presses.
func RunHeadless(ctx context.Context, boot Boot, cfg RunConfig) error {
	var script *Script
	if cfg.Script != "" {
		s, err := LoadScript(cfg.Script)
		if err != nil {
			return err
		}
		script = s
	}

	h := newHostHAL(&hostLogger{w: os.Stdout})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := startMachine(ctx, h, boot)

	hz := cfg.Hz
	if hz <= 0 {
		hz = h.chip.TimerHz()
	}
	d := time.Duration(float64(time.Second) / hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %v", hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	finish := func(err error) error {
		if cfg.Dump != nil {
			if derr := DumpText(cfg.Dump, h.text); derr != nil && err == nil {
				err = derr
			}
		}
		return err
	}

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return finish(ctx.Err())
		case err := <-done:
			return finish(err)
		case <-t.C:
			tick++
			for _, ev := range script.At(tick) {
				h.chip.PushScancodes(Keystroke(ev)...)
			}
			h.chip.Tick()
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				cancel()
				<-done
				return finish(nil)
			}
		}
	}
}
