//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"sync"
)

type hostHAL struct {
	logger Logger
	chip   *Chipset
	text   *TextMemory
}

func newHostHAL(logger Logger) *hostHAL {
	return &hostHAL{
		logger: logger,
		chip:   NewChipset(logger, nil),
		text:   NewTextMemory(TextRows, TextCols),
	}
}

func (h *hostHAL) Logger() Logger                  { return h.logger }
func (h *hostHAL) Ports() Ports                    { return h.chip }
func (h *hostHAL) Interrupts() InterruptController { return h.chip }
func (h *hostHAL) Text() TextBuffer                { return h.text }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
