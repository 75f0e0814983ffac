package kernel

import "snakeos/hal"

const (
	pitBaseHz = 1193182

	// channel 0, lobyte/hibyte, rate generator
	pitModeRate = 0x34
)

// SetTimerFrequency programs PIT channel 0 to fire at roughly hz and
// returns the divisor written. Rates outside the PIT range are clamped.
func SetTimerFrequency(ports hal.Ports, hz uint32) uint16 {
	var divisor uint32
	switch {
	case hz == 0:
		divisor = 0 // 65536
	case hz >= pitBaseHz:
		divisor = 1
	default:
		divisor = pitBaseHz / hz
		if divisor > 0xFFFF {
			divisor = 0
		}
	}
	ports.Out8(hal.PortPITCommand, pitModeRate)
	ports.Out8(hal.PortPIT0, uint8(divisor))
	ports.Out8(hal.PortPIT0, uint8(divisor>>8))
	return uint16(divisor)
}
