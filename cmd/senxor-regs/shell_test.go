package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-koeritz/senxor/regmap"
)

type memTransport struct {
	regs  map[uint8]uint8
	reads int
}

func (m *memTransport) ReadRegister(addr uint8) (uint8, error) {
	m.reads++
	return m.regs[addr], nil
}

func (m *memTransport) WriteRegister(addr, value uint8) error {
	m.regs[addr] = value
	return nil
}

func (m *memTransport) ReadRegisters(addrs []uint8) (map[uint8]uint8, error) {
	m.reads++
	out := make(map[uint8]uint8, len(addrs))
	for _, a := range addrs {
		out[a] = m.regs[a]
	}
	return out, nil
}

func testShell() (*shell, *memTransport, *bytes.Buffer) {
	t := &memTransport{regs: map[uint8]uint8{
		uint8(regmap.REG_SENXOR_TYPE): 1,
		uint8(regmap.REG_EMISSIVITY):  95,
	}}
	var out bytes.Buffer
	fields := regmap.NewFields(regmap.NewStore(regmap.MI48(), t))
	return &shell{fields: fields, out: &out}, t, &out
}

func TestShellGet(t *testing.T) {
	sh, _, out := testShell()
	require.NoError(t, sh.exec("get senxor_type emissivity"))
	assert.Contains(t, out.String(), "MI0801")
	assert.Contains(t, out.String(), "95%")
}

func TestShellSetAndRead(t *testing.T) {
	sh, mem, out := testShell()
	require.NoError(t, sh.exec("set EMISSIVITY 0x50"))
	assert.EqualValues(t, 80, mem.regs[uint8(regmap.REG_EMISSIVITY)])

	out.Reset()
	require.NoError(t, sh.exec("read 0xCA"))
	assert.Contains(t, out.String(), "0xCA EMISSIVITY")
	assert.Contains(t, out.String(), "0x50")

	out.Reset()
	require.NoError(t, sh.exec("write emissivity 100"))
	assert.EqualValues(t, 100, mem.regs[uint8(regmap.REG_EMISSIVITY)])
}

func TestShellStatusUsesCache(t *testing.T) {
	sh, mem, out := testShell()
	require.NoError(t, sh.exec("status"))
	assert.Contains(t, out.String(), "readall")
	assert.Zero(t, mem.reads)

	require.NoError(t, sh.exec("readall"))
	assert.Equal(t, 1, mem.reads)

	out.Reset()
	require.NoError(t, sh.exec("status"))
	assert.Equal(t, 1, mem.reads)
	assert.Contains(t, out.String(), "SENXOR_TYPE")
}

func TestShellErrors(t *testing.T) {
	sh, _, _ := testShell()
	for _, line := range []string{
		"bogus",
		"get",
		"set EMISSIVITY",
		"set EMISSIVITY x",
		"set NO_SUCH_FIELD 1",
		"read 0x00",
		"write FRAME_MODE 0x100",
	} {
		assert.Error(t, sh.exec(line), line)
	}
	assert.ErrorIs(t, sh.exec("quit"), errQuit)
	assert.NoError(t, sh.exec("   "))
}

func TestShellListings(t *testing.T) {
	sh, _, out := testShell()
	require.NoError(t, sh.exec("regs"))
	assert.Contains(t, out.String(), "FRAME_MODE")
	assert.Equal(t, len(regmap.MI48().Registers()), bytes.Count(out.Bytes(), []byte("\n")))

	out.Reset()
	require.NoError(t, sh.exec("fields emissivity"))
	assert.Contains(t, out.String(), "EMISSIVITY")
	assert.NotContains(t, out.String(), "SENXOR_TYPE")
}
