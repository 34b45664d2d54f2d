package usbserial

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

// device emulates register access of a SenXor behind a fakePort.
func device(regs map[uint8]uint8) func([]byte) []byte {
	return func(msg []byte) []byte {
		body := string(msg[len(msgPrefix)+4 : len(msg)-checksumLen])
		cmd, args := body[:cmdLen], body[cmdLen:]
		hex := func(s string) uint8 {
			v, _ := strconv.ParseUint(s, 16, 8)
			return uint8(v)
		}
		switch cmd {
		case cmdRREG:
			return ack(cmdRREG, []byte(fmt.Sprintf("%02X", regs[hex(args)])))
		case cmdWREG:
			regs[hex(args[:2])] = hex(args[2:4])
			return ack(cmdWREG, nil)
		case cmdRRSE:
			var payload []byte
			for i := 0; i+2 <= len(args) && args[i:i+2] != rrseEndToken; i += 2 {
				addr := hex(args[i : i+2])
				payload = fmt.Appendf(payload, "%02X%02X", addr, regs[addr])
			}
			return ack(cmdRRSE, payload)
		}
		return nil
	}
}

func newTestConn(regs map[uint8]uint8, opts ...Option) (*Conn, *fakePort) {
	p := &fakePort{respond: device(regs)}
	return New("fake", p, opts...), p
}

func TestRegisterAccess(t *testing.T) {
	regs := map[uint8]uint8{0xB1: 0x22, 0xCA: 0x5f}
	c, p := newTestConn(regs)

	v, err := c.ReadRegister(0xB1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x22), v)

	require.NoError(t, c.WriteRegister(0xCA, 95))
	assert.Equal(t, uint8(95), regs[0xCA])

	vals, err := c.ReadRegisters([]uint8{0xB1, 0xCA})
	require.NoError(t, err)
	assert.Equal(t, map[uint8]uint8{0xB1: 0x22, 0xCA: 95}, vals)

	require.Len(t, p.written, 3)
	assert.Equal(t, "   #000ARREGB1XXXX", string(p.written[0]))
}

func TestFrameDuringAck(t *testing.T) {
	regs := map[uint8]uint8{0xB6: 0x10}
	c, p := newTestConn(regs)
	respond := p.respond
	p.respond = func(msg []byte) []byte {
		return append(ack(cmdGFRA, gfraPayload()), respond(msg)...)
	}

	v, err := c.ReadRegister(0xB6)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x10), v)

	header, data, err := c.ReadFrame(context.Background())
	require.NoError(t, err, "frame received before the ack is kept")
	assert.Len(t, header, 80)
	assert.Len(t, data, 4960)
}

func TestReadFrameResync(t *testing.T) {
	c, p := newTestConn(nil)
	p.feed([]byte("garbage"))
	p.feed(ack(cmdGFRA, gfraPayload()))

	_, data, err := c.ReadFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(1), data[1])
}

func TestReadFrameTimeout(t *testing.T) {
	c, _ := newTestConn(nil, WithFrameTimeout(30*time.Millisecond))

	_, _, err := c.ReadFrame(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = c.ReadFrame(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAckChecksumMismatch(t *testing.T) {
	c, p := newTestConn(nil)
	p.respond = func([]byte) []byte { return []byte("   #000ARREG2A0000") }

	_, err := c.ReadRegister(0xB1)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestClose(t *testing.T) {
	c, p := newTestConn(nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, p.closed)

	_, err := c.ReadRegister(0xB1)
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	orig := listPorts
	defer func() { listPorts = orig }()

	listPorts = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyACM0", IsUSB: true, VID: "0416", PID: "b020", Product: "XPRO"},
			{Name: "/dev/ttyACM1", IsUSB: true, VID: "0416", PID: "1234"},
			{Name: "/dev/ttyS0"},
		}, nil
	}
	ports, err := Discover()
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "/dev/ttyACM0", ports[0].Name)
	assert.Equal(t, ProductXPRO, ports[0].PID)

	listPorts = func() ([]*enumerator.PortDetails, error) { return nil, errors.New("no sysfs") }
	_, err = Discover()
	assert.Error(t, err)
}
