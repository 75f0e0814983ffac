package serial

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeos/hal"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestPortForwardsLinesThroughUART(t *testing.T) {
	var got lines
	chip := hal.NewChipset(&got, nil)
	p := New(chip, hal.PortCOM1, nil)
	p.Init()

	p.WriteLineString("hello")
	fmt.Fprintf(p, "score=%d\r\n", 7)
	p.WriteLineBytes([]byte("bye"))

	assert.Equal(t, lines{"hello", "score=7", "bye"}, got)
}

type stuckPorts struct{ writes int }

func (s *stuckPorts) In8(uint16) uint8   { return 0 }
func (s *stuckPorts) Out8(uint16, uint8) { s.writes++ }

func TestWriteTimesOutWhenTransmitterStuck(t *testing.T) {
	ports := &stuckPorts{}
	p := New(ports, hal.PortCOM1, nil)

	n, err := p.Write([]byte("x"))
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, ports.writes)
}

type countingMasker struct{ n int }

func (m *countingMasker) WithoutInterrupts(fn func()) { m.n++; fn() }

func TestWritesMaskInterrupts(t *testing.T) {
	var got lines
	chip := hal.NewChipset(&got, nil)
	m := &countingMasker{}
	p := New(chip, hal.PortCOM1, m)

	require.NoError(t, p.WriteByte('a'))
	p.WriteLineString("b")
	assert.Equal(t, 2, m.n)
	assert.Equal(t, lines{"ab"}, got)
}

func TestBackspaceIsErased(t *testing.T) {
	var got lines
	chip := hal.NewChipset(&got, nil)
	p := New(chip, hal.PortCOM1, nil)
	p.WriteLineString("ab\x08")
	assert.Equal(t, lines{"ab\x08 \x08"}, got)
}
