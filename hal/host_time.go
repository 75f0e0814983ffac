//go:build !tinygo

package hal

import "time"

// hostTimer paces PIT interrupts against the wall clock.
type hostTimer struct {
	chip *Chipset
	hz   float64 // 0 follows the programmed PIT rate
	now  func() time.Time

	seq  uint64
	last time.Time
	acc  time.Duration
}

func newHostTimer(chip *Chipset, hz float64) *hostTimer {
	return &hostTimer{chip: chip, hz: hz, now: time.Now}
}

func (t *hostTimer) period() time.Duration {
	hz := t.hz
	if hz <= 0 {
		hz = t.chip.TimerHz()
	}
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / hz)
}

// step raises one timer interrupt per elapsed period and returns the tick count.
func (t *hostTimer) step() uint64 {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		return t.seq
	}

	t.acc += now.Sub(t.last)
	t.last = now

	d := t.period()
	if d <= 0 {
		return t.seq
	}
	for t.acc >= d {
		t.acc -= d
		t.seq++
		t.chip.Tick()
	}
	return t.seq
}
