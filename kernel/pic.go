package kernel

import "snakeos/hal"

const (
	icw1Init = 0x10
	icw1ICW4 = 0x01
	icw4Mode = 0x01 // 8086/88 mode

	cmdEndOfInterrupt = 0x20
)

type pic struct {
	offset  uint8
	command uint16
	data    uint16
}

func (p pic) handlesInterrupt(v uint8) bool {
	return p.offset <= v && v < p.offset+8
}

// ChainedPICs drives the master/slave 8259 pair.
type ChainedPICs struct {
	ports hal.Ports
	pics  [2]pic
}

// NewChainedPICs returns a driver for the pair mapped at offset1 and
// offset2. Nothing is written until Initialize.
func NewChainedPICs(ports hal.Ports, offset1, offset2 uint8) *ChainedPICs {
	return &ChainedPICs{
		ports: ports,
		pics: [2]pic{
			{offset: offset1, command: hal.PortPIC1Command, data: hal.PortPIC1Data},
			{offset: offset2, command: hal.PortPIC2Command, data: hal.PortPIC2Data},
		},
	}
}

// Initialize runs the ICW1-4 sequence on both controllers, remapping them
// to the configured offsets. The interrupt masks are preserved.
func (c *ChainedPICs) Initialize() {
	// A write to the POST port gives the controllers time to settle.
	wait := func() { c.ports.Out8(hal.PortPOST, 0) }

	master, slave := c.pics[0], c.pics[1]
	mask1 := c.ports.In8(master.data)
	mask2 := c.ports.In8(slave.data)

	c.ports.Out8(master.command, icw1Init|icw1ICW4)
	wait()
	c.ports.Out8(slave.command, icw1Init|icw1ICW4)
	wait()

	c.ports.Out8(master.data, master.offset)
	wait()
	c.ports.Out8(slave.data, slave.offset)
	wait()

	// Slave on master IR2; slave cascade identity 2.
	c.ports.Out8(master.data, 1<<hal.IRQCascade)
	wait()
	c.ports.Out8(slave.data, hal.IRQCascade)
	wait()

	c.ports.Out8(master.data, icw4Mode)
	wait()
	c.ports.Out8(slave.data, icw4Mode)
	wait()

	c.ports.Out8(master.data, mask1)
	c.ports.Out8(slave.data, mask2)
}

// HandlesInterrupt reports whether vector v belongs to either controller.
func (c *ChainedPICs) HandlesInterrupt(v uint8) bool {
	return c.pics[0].handlesInterrupt(v) || c.pics[1].handlesInterrupt(v)
}

// NotifyEndOfInterrupt acknowledges vector v. Slave vectors are
// acknowledged on both controllers, slave first.
func (c *ChainedPICs) NotifyEndOfInterrupt(v uint8) {
	if !c.HandlesInterrupt(v) {
		return
	}
	if c.pics[1].handlesInterrupt(v) {
		c.ports.Out8(c.pics[1].command, cmdEndOfInterrupt)
	}
	c.ports.Out8(c.pics[0].command, cmdEndOfInterrupt)
}

// Masks returns the master and slave interrupt masks.
func (c *ChainedPICs) Masks() (uint8, uint8) {
	return c.ports.In8(c.pics[0].data), c.ports.In8(c.pics[1].data)
}

// SetMasks writes both interrupt masks.
func (c *ChainedPICs) SetMasks(mask1, mask2 uint8) {
	c.ports.Out8(c.pics[0].data, mask1)
	c.ports.Out8(c.pics[1].data, mask2)
}
