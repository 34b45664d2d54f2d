// Package i2c gives register access to a MI48 on an I2C (SMBus) bus.
//
// Frames are transferred over SPI on such boards and are not handled
// here; a Transport only serves the register store.
package i2c

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/go-daq/smbus"
)

// DefaultAddr is the 7-bit address of the MI48 with its address pin low.
const DefaultAddr = 0x40

// Bus is the subset of *smbus.Conn used by Transport.
type Bus interface {
	ReadReg(addr, reg uint8) (uint8, error)
	WriteReg(addr, reg, v uint8) error
	Close() error
}

var openBus = func(bus int, addr uint8) (Bus, error) {
	return smbus.Open(bus, addr)
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger of the transport.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.log = logger
	}
}

// Transport reads and writes MI48 registers over SMBus byte transfers.
type Transport struct {
	bus  Bus
	addr uint8
	log  *slog.Logger

	mu sync.Mutex
}

// Open opens /dev/i2c-<bus> for the device at addr.
func Open(bus int, addr uint8, opts ...Option) (*Transport, error) {
	b, err := openBus(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus %d: %w", bus, err)
	}
	return New(b, addr, opts...), nil
}

// New returns a transport for the device at addr on an open bus.
func New(bus Bus, addr uint8, opts ...Option) *Transport {
	t := &Transport{
		bus:  bus,
		addr: addr,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("i2c_addr", fmt.Sprintf("0x%02x", addr))
	return t
}

// ReadRegister reads one register.
func (t *Transport) ReadRegister(reg uint8) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, err := t.bus.ReadReg(t.addr, reg)
	if err != nil {
		return 0, fmt.Errorf("could not read register 0x%02x: %w", reg, err)
	}
	t.log.Debug("read register", "addr", reg, "value", v)
	return v, nil
}

// WriteRegister writes one register.
func (t *Transport) WriteRegister(reg, value uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.bus.WriteReg(t.addr, reg, value); err != nil {
		return fmt.Errorf("could not write register 0x%02x: %w", reg, err)
	}
	t.log.Debug("write register", "addr", reg, "value", value)
	return nil
}

// ReadRegisters reads each register in turn while holding the bus; SMBus
// has no multi-register read for scattered addresses.
func (t *Transport) ReadRegisters(regs []uint8) (map[uint8]uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	vals := make(map[uint8]uint8, len(regs))
	for _, reg := range regs {
		v, err := t.bus.ReadReg(t.addr, reg)
		if err != nil {
			return nil, fmt.Errorf("could not read register 0x%02x: %w", reg, err)
		}
		vals[reg] = v
	}
	t.log.Debug("read registers", "count", len(vals))
	return vals, nil
}

// Close releases the bus.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.Close()
}
