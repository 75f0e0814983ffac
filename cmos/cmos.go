// Package cmos reads the real-time clock in CMOS RAM.
package cmos

import "snakeos/hal"

const (
	regSecond  = 0x00
	regMinute  = 0x02
	regHour    = 0x04
	regDay     = 0x07
	regMonth   = 0x08
	regYear    = 0x09
	regStatusA = 0x0A
	regStatusB = 0x0B

	statusAUpdating = 0x80
	statusB24Hour   = 0x02
	statusBBinary   = 0x04
	hourPM          = 0x80
)

// maxPolls bounds the wait for an RTC update to finish.
const maxPolls = 1 << 16

// Time is a wall-clock reading. Year is two digits.
type Time struct {
	Second, Minute, Hour int
	Day, Month, Year     int
}

// Seed folds t into a coarse seconds count, using 30-day months.
func (t Time) Seed() uint64 {
	return uint64(t.Second) +
		uint64(t.Minute)*60 +
		uint64(t.Hour)*3600 +
		uint64(t.Day)*86400 +
		uint64(t.Month)*2592000
}

type RTC struct {
	ports hal.Ports
}

func New(ports hal.Ports) *RTC {
	return &RTC{ports: ports}
}

func (r *RTC) register(reg uint8) uint8 {
	r.ports.Out8(hal.PortCMOSIndex, reg)
	return r.ports.In8(hal.PortCMOSData)
}

func (r *RTC) updating() bool {
	return r.register(regStatusA)&statusAUpdating != 0
}

func (r *RTC) raw() Time {
	for i := 0; i < maxPolls && r.updating(); i++ {
	}
	return Time{
		Second: int(r.register(regSecond)),
		Minute: int(r.register(regMinute)),
		Hour:   int(r.register(regHour)),
		Day:    int(r.register(regDay)),
		Month:  int(r.register(regMonth)),
		Year:   int(r.register(regYear)),
	}
}

// Now reads the clock, re-reading until two consecutive reads agree, and
// converts BCD and 12-hour values.
func (r *RTC) Now() Time {
	t := r.raw()
	for i := 0; i < 4; i++ {
		again := r.raw()
		if again == t {
			break
		}
		t = again
	}

	status := r.register(regStatusB)
	pm := t.Hour&hourPM != 0
	t.Hour &^= hourPM
	if status&statusBBinary == 0 {
		t.Second = fromBCD(t.Second)
		t.Minute = fromBCD(t.Minute)
		t.Hour = fromBCD(t.Hour)
		t.Day = fromBCD(t.Day)
		t.Month = fromBCD(t.Month)
		t.Year = fromBCD(t.Year)
	}
	if status&statusB24Hour == 0 {
		t.Hour %= 12
		if pm {
			t.Hour += 12
		}
	}
	return t
}

// Seed reads the clock once and returns its seed.
func (r *RTC) Seed() uint64 { return r.Now().Seed() }

func fromBCD(v int) int { return v&0x0F + (v>>4)*10 }
