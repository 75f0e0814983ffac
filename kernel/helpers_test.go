package kernel

import (
	"strings"
	"sync"
	"time"

	"snakeos/hal"
)

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func fixedClock() time.Time { return time.Date(2024, 3, 9, 13, 45, 30, 0, time.UTC) }

// newMachine returns a chipset and a CPU wired to it.
func newMachine() (*hal.Chipset, *CPU, *lineLog) {
	log := &lineLog{}
	chip := hal.NewChipset(log, fixedClock)
	return chip, NewCPU(chip), log
}

// recordingPorts logs every write before forwarding it.
type recordingPorts struct {
	hal.Ports
	writes []portWrite
}

type portWrite struct {
	port  uint16
	value uint8
}

func (p *recordingPorts) Out8(port uint16, v uint8) {
	p.writes = append(p.writes, portWrite{port, v})
	p.Ports.Out8(port, v)
}
