package cmos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"snakeos/hal"
)

func TestNowFromChipset(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 9, 13, 45, 30, 0, time.UTC) }
	chip := hal.NewChipset(nil, clock)

	got := New(chip).Now()
	assert.Equal(t, Time{Second: 30, Minute: 45, Hour: 13, Day: 9, Month: 3, Year: 24}, got)
	assert.Equal(t, uint64(30+45*60+13*3600+9*86400+3*2592000), got.Seed())
}

// fakeRTC serves fixed register contents.
type fakeRTC struct {
	index uint8
	regs  map[uint8]uint8
	polls int
}

func (f *fakeRTC) Out8(port uint16, v uint8) {
	if port == hal.PortCMOSIndex {
		f.index = v
	}
}

func (f *fakeRTC) In8(port uint16) uint8 {
	if f.index == regStatusA && f.polls > 0 {
		f.polls--
		return statusAUpdating
	}
	return f.regs[f.index]
}

func TestTwelveHourBCD(t *testing.T) {
	f := &fakeRTC{regs: map[uint8]uint8{
		regSecond:  0x05,
		regMinute:  0x59,
		regHour:    hourPM | 0x11,
		regDay:     0x31,
		regMonth:   0x12,
		regYear:    0x99,
		regStatusB: 0x00,
	}}
	got := New(f).Now()
	assert.Equal(t, Time{Second: 5, Minute: 59, Hour: 23, Day: 31, Month: 12, Year: 99}, got)
}

func TestBinaryTwelveHourNoonAndMidnight(t *testing.T) {
	f := &fakeRTC{regs: map[uint8]uint8{
		regHour:    hourPM | 12,
		regDay:     1,
		regMonth:   1,
		regStatusB: statusBBinary,
	}}
	got := New(f).Now()
	assert.Equal(t, 12, got.Hour)
	assert.Equal(t, 1, got.Day)

	f.regs[regHour] = 12
	assert.Equal(t, 0, New(f).Now().Hour)
}

func TestWaitsForUpdateToFinish(t *testing.T) {
	f := &fakeRTC{polls: 3, regs: map[uint8]uint8{regSecond: 0x42, regStatusB: statusB24Hour}}
	got := New(f).Now()
	assert.Equal(t, 42, got.Second)
	assert.Equal(t, 0, f.polls)
}
