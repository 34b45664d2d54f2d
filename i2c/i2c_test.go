package i2c

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-koeritz/senxor/regmap"
)

type fakeBus struct {
	regs   map[uint8]uint8
	addr   uint8
	fail   error
	closed bool
}

func (b *fakeBus) ReadReg(addr, reg uint8) (uint8, error) {
	if b.fail != nil {
		return 0, b.fail
	}
	b.addr = addr
	return b.regs[reg], nil
}

func (b *fakeBus) WriteReg(addr, reg, v uint8) error {
	if b.fail != nil {
		return b.fail
	}
	b.addr = addr
	b.regs[reg] = v
	return nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

func TestOpen(t *testing.T) {
	orig := openBus
	defer func() { openBus = orig }()

	bus := &fakeBus{regs: map[uint8]uint8{0xB2: 0x42}}
	openBus = func(n int, addr uint8) (Bus, error) {
		assert.Equal(t, 1, n)
		return bus, nil
	}

	tr, err := Open(1, DefaultAddr)
	require.NoError(t, err)

	v, err := tr.ReadRegister(0xB2)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)
	assert.Equal(t, uint8(DefaultAddr), bus.addr)

	require.NoError(t, tr.Close())
	assert.True(t, bus.closed)

	openBus = func(int, uint8) (Bus, error) { return nil, errors.New("no such device") }
	_, err = Open(3, DefaultAddr)
	assert.ErrorContains(t, err, "i2c bus 3")
}

func TestTransportWithStore(t *testing.T) {
	bus := &fakeBus{regs: map[uint8]uint8{0xB2: 0x42, 0xB3: 7}}
	fields := regmap.NewFields(regmap.NewStore(regmap.MI48(), New(bus, DefaultAddr)))

	vals, err := fields.GetMany([]regmap.Name{regmap.FW_VERSION_MAJOR, regmap.FW_VERSION_MINOR, regmap.FW_VERSION_BUILD})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), vals[regmap.FW_VERSION_MAJOR])
	assert.Equal(t, uint32(7), vals[regmap.FW_VERSION_BUILD])

	require.NoError(t, fields.Set(regmap.EMISSIVITY, 95))
	assert.Equal(t, uint8(95), bus.regs[0xCA])

	bus.fail = errors.New("nack")
	_, err = fields.Store().Refresh(regmap.REG_EMISSIVITY)
	assert.ErrorContains(t, err, "nack")
}
