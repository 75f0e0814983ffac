package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeos/hal"
)

func TestInitializeRemapsBothControllers(t *testing.T) {
	chip, _, _ := newMachine()

	chip.Tick()
	v, ok := chip.Acknowledge()
	require.True(t, ok)
	assert.Equal(t, uint8(0x08), v, "power-on offset collides with the exception range")

	pics := NewChainedPICs(chip, PIC1Offset, PIC2Offset)
	pics.Initialize()

	chip.Tick()
	v, ok = chip.Acknowledge()
	require.True(t, ok)
	assert.Equal(t, uint8(TimerVector), v)
	pics.NotifyEndOfInterrupt(v)

	chip.RaiseIRQ(8)
	v, ok = chip.Acknowledge()
	require.True(t, ok)
	assert.Equal(t, PIC2Offset, v)
}

func TestInitializeWritesICWSequence(t *testing.T) {
	chip, _, _ := newMachine()
	ports := &recordingPorts{Ports: chip}
	NewChainedPICs(ports, PIC1Offset, PIC2Offset).Initialize()

	var got []portWrite
	for _, w := range ports.writes {
		if w.port != hal.PortPOST {
			got = append(got, w)
		}
	}
	want := []portWrite{
		{hal.PortPIC1Command, 0x11},
		{hal.PortPIC2Command, 0x11},
		{hal.PortPIC1Data, 32},
		{hal.PortPIC2Data, 40},
		{hal.PortPIC1Data, 4},
		{hal.PortPIC2Data, 2},
		{hal.PortPIC1Data, 0x01},
		{hal.PortPIC2Data, 0x01},
		{hal.PortPIC1Data, 0x00},
		{hal.PortPIC2Data, 0x00},
	}
	assert.Equal(t, want, got)
	assert.Len(t, ports.writes, len(want)+8, "one io wait after each ICW")
}

func TestInitializePreservesMasks(t *testing.T) {
	chip, _, _ := newMachine()
	pics := NewChainedPICs(chip, PIC1Offset, PIC2Offset)
	pics.SetMasks(0xFC, 0xFF)

	pics.Initialize()

	m1, m2 := pics.Masks()
	assert.Equal(t, uint8(0xFC), m1)
	assert.Equal(t, uint8(0xFF), m2)
}

func TestSlaveEOIAcknowledgesBothControllers(t *testing.T) {
	chip, _, _ := newMachine()
	pics := NewChainedPICs(chip, PIC1Offset, PIC2Offset)
	pics.Initialize()

	chip.RaiseIRQ(12)
	v, ok := chip.Acknowledge()
	require.True(t, ok)
	assert.Equal(t, PIC2Offset+4, v)

	chip.RaiseIRQ(3)
	_, ok = chip.Acknowledge()
	assert.False(t, ok, "cascade line still in service on the master")

	pics.NotifyEndOfInterrupt(v)
	v, ok = chip.Acknowledge()
	require.True(t, ok)
	assert.Equal(t, PIC1Offset+3, v)
}

func TestHandlesInterrupt(t *testing.T) {
	pics := NewChainedPICs(nil, PIC1Offset, PIC2Offset)
	for _, tc := range []struct {
		v    uint8
		want bool
	}{
		{31, false},
		{32, true},
		{39, true},
		{40, true},
		{47, true},
		{48, false},
	} {
		assert.Equal(t, tc.want, pics.HandlesInterrupt(tc.v), "vector %d", tc.v)
	}
}

func TestNotifyEndOfInterruptIgnoresForeignVectors(t *testing.T) {
	chip, _, _ := newMachine()
	ports := &recordingPorts{Ports: chip}
	NewChainedPICs(ports, PIC1Offset, PIC2Offset).NotifyEndOfInterrupt(uint8(PageFault))
	assert.Empty(t, ports.writes)
}

func TestSetTimerFrequency(t *testing.T) {
	chip, _, _ := newMachine()

	divisor := SetTimerFrequency(chip, 100)
	assert.Equal(t, uint16(11931), divisor)
	assert.InDelta(t, 100.0, chip.TimerHz(), 0.01)

	assert.Equal(t, uint16(0), SetTimerFrequency(chip, 10))
	assert.InDelta(t, 18.2, chip.TimerHz(), 0.01)
}
