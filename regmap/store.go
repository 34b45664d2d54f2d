package regmap

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jonas-koeritz/senxor/errdefs"
)

// Transport performs register round-trips with the device.
type Transport interface {
	ReadRegister(addr uint8) (uint8, error)
	WriteRegister(addr, value uint8) error

	// ReadRegisters reads every address in a single round-trip.
	ReadRegisters(addrs []uint8) (map[uint8]uint8, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for register I/O.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.log = logger
	}
}

// Store is the host-side cache of register values in front of a Transport.
//
// A single mutex guards the cache and is held across each device
// round-trip, so a read-modify-write cannot interleave with another
// writer. Store is safe for concurrent use.
type Store struct {
	m   *Map
	t   Transport
	log *slog.Logger

	mu    sync.Mutex
	cache map[Addr]uint8
}

// NewStore returns an empty store for the registers of m.
func NewStore(m *Map, t Transport, opts ...Option) *Store {
	s := &Store{
		m:     m,
		t:     t,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache: make(map[Addr]uint8, len(m.regs)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "regmap")
	return s
}

// Map returns the register map of the store.
func (s *Store) Map() *Map {
	return s.m
}

// Read returns the value of the register at addr. Cached values of
// registers that are not auto-reset are returned without device I/O.
func (s *Store) Read(addr Addr) (uint8, error) {
	reg, err := s.lookup("read", addr)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(reg, false)
}

// Refresh reads the register at addr from the device regardless of the
// cache state.
func (s *Store) Refresh(addr Addr) (uint8, error) {
	reg, err := s.lookup("read", addr)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(reg, true)
}

// Write writes value to the register at addr and caches it. The cache is
// left untouched if the round-trip fails.
func (s *Store) Write(addr Addr, value uint8) error {
	reg, err := s.lookup("write", addr)
	if err != nil {
		return err
	}
	if !reg.Writable {
		return errdefs.Validation("write", reg.String(), "register is read-only")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(reg, value)
}

// ReadAll reads every declared register in one round-trip and returns the
// values by address.
func (s *Store) ReadAll() (map[Addr]uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchLocked("read all", s.m.Addrs())
}

// ReadMany returns the values of the registers at addrs. Registers that
// can be served from cache are; the rest are fetched together in one
// round-trip.
func (s *Store) ReadMany(addrs []Addr) (map[Addr]uint8, error) {
	regs := make([]*Register, 0, len(addrs))
	for _, addr := range addrs {
		reg, err := s.lookup("read", addr)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vals := make(map[Addr]uint8, len(regs))
	var misses []*Register
	for _, reg := range regs {
		if v, ok := s.cache[reg.Addr]; ok && !reg.AutoReset {
			vals[reg.Addr] = v
			continue
		}
		misses = append(misses, reg)
	}

	switch len(misses) {
	case 0:
	case 1:
		v, err := s.readLocked(misses[0], true)
		if err != nil {
			return nil, err
		}
		vals[misses[0].Addr] = v
	default:
		addrs := make([]Addr, len(misses))
		for i, reg := range misses {
			addrs[i] = reg.Addr
		}
		fetched, err := s.fetchLocked("read many", addrs)
		if err != nil {
			return nil, err
		}
		for addr, v := range fetched {
			vals[addr] = v
		}
	}
	return vals, nil
}

// Status returns a snapshot of the cached register values. It performs
// no I/O; registers never read or written are absent.
func (s *Store) Status() map[Addr]uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[Addr]uint8, len(s.cache))
	for addr, v := range s.cache {
		snap[addr] = v
	}
	return snap
}

// Invalidate drops every cached value.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cache)
}

// modify replaces the bits of mask in the register at addr with bits,
// holding the lock for the whole read-modify-write.
func (s *Store) modify(op, subject string, addr Addr, mask, bits uint8) error {
	reg, ok := s.m.register(addr)
	if !ok {
		return errdefs.Validation(op, subject, "unknown register %s", addr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var cur uint8
	if mask != 0xFF {
		v, err := s.readLocked(reg, false)
		if err != nil {
			return err
		}
		cur = v
	}
	return s.writeLocked(reg, cur&^mask|bits&mask)
}

func (s *Store) lookup(op string, addr Addr) (*Register, error) {
	reg, ok := s.m.register(addr)
	if !ok {
		return nil, errdefs.Validation(op, addr.String(), "unknown register")
	}
	return reg, nil
}

func (s *Store) readLocked(reg *Register, force bool) (uint8, error) {
	if v, ok := s.cache[reg.Addr]; ok && !reg.AutoReset && !force {
		return v, nil
	}

	v, err := s.t.ReadRegister(uint8(reg.Addr))
	if err != nil {
		return 0, errdefs.Transport("read", reg.String(), err)
	}
	s.cache[reg.Addr] = v
	s.log.Debug("register read", "addr", reg.Addr, "name", reg.Name, "value", v)
	return v, nil
}

func (s *Store) writeLocked(reg *Register, value uint8) error {
	if err := s.t.WriteRegister(uint8(reg.Addr), value); err != nil {
		return errdefs.Transport("write", reg.String(), err)
	}
	s.cache[reg.Addr] = value
	s.log.Debug("register write", "addr", reg.Addr, "name", reg.Name, "value", value)
	return nil
}

func (s *Store) fetchLocked(op string, addrs []Addr) (map[Addr]uint8, error) {
	raw := make([]uint8, len(addrs))
	for i, addr := range addrs {
		raw[i] = uint8(addr)
	}

	got, err := s.t.ReadRegisters(raw)
	if err != nil {
		return nil, errdefs.Transport(op, fmt.Sprintf("%d registers", len(addrs)), err)
	}

	vals := make(map[Addr]uint8, len(addrs))
	for _, addr := range addrs {
		v, ok := got[uint8(addr)]
		if !ok {
			return nil, errdefs.Transport(op, addr.String(), fmt.Errorf("register missing from response"))
		}
		vals[addr] = v
	}
	for addr, v := range vals {
		s.cache[addr] = v
	}
	s.log.Debug("registers read", "count", len(vals))
	return vals, nil
}
