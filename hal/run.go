//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Mode selects the host front end.
type Mode string

const (
	ModeWindow   Mode = "window"
	ModeTerminal Mode = "terminal"
	ModeHeadless Mode = "headless"
)

// RunConfig controls the host runners.
type RunConfig struct {
	Mode Mode
	// Hz overrides the timer interrupt rate; 0 follows the programmed PIT.
	Hz float64
	// Ticks stops a headless run after N timer interrupts (0 = run forever).
	Ticks uint64
	// Script is a starlark file with scheduled key presses (headless only).
	Script string
	// Dump receives the final screen contents when a headless run ends.
	Dump io.Writer
}

// Boot performs machine setup against a HAL and returns the machine's
// halt loop, which runs until ctx ends or the machine halts.
type Boot func(HAL) func(ctx context.Context) error

// Run starts the configured host front end.
func Run(ctx context.Context, boot Boot, cfg RunConfig) error {
	switch cfg.Mode {
	case ModeWindow, "":
		return RunWindow(boot, cfg)
	case ModeTerminal:
		return RunTerminal(ctx, boot, cfg)
	case ModeHeadless:
		return RunHeadless(ctx, boot, cfg)
	}
	return fmt.Errorf("unknown mode %q", cfg.Mode)
}

// startMachine boots the machine and runs its halt loop on its own goroutine,
// the single "core" of the emulated PC.
func startMachine(ctx context.Context, h *hostHAL, boot Boot) <-chan error {
	run := boot(h)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()
	return done
}

// DumpText writes the text memory as lines of Unicode text.
func DumpText(w io.Writer, text *TextMemory) error {
	cells := text.Snapshot(nil)
	cols := text.Cols()
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteRune(CellRune(byte(cell)))
		if (i+1)%cols == 0 {
			line := strings.TrimRight(sb.String(), " ")
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			sb.Reset()
		}
	}
	return nil
}
