// Package regmap models the register space of a SenXor/MI48 device.
//
// A Map is the static hardware description: registers identified by
// address and fields overlaid on their bits. A Store owns the host-side
// copy of register values and decides when a read can be served from cache
// and when it needs a device round-trip. Fields reads and writes named
// fields through a Store.
//
// Cache policy:
//   - a register that is not auto-reset is read from the device once and
//     then served from cache until it is written or invalidated;
//   - an auto-reset register (status flags, self-clearing command bits)
//     is read from the device on every read;
//   - a successful write updates the cache with the written value, a
//     failed write leaves it untouched.
package regmap

import (
	"fmt"
	"sort"

	"github.com/jonas-koeritz/senxor/errdefs"
)

// Map is an immutable, validated set of registers and fields.
type Map struct {
	regs   []Register
	byAddr map[Addr]int

	fields []Field
	byName map[Name]int

	// fields overlaying each register, in declaration order
	byReg map[Addr][]Name
}

// NewMap validates regs and fields and builds a Map. Registers and fields
// keep their declaration order for iteration.
//
// Validation rejects duplicate addresses or names, segments outside a
// register or referencing an undeclared register, and bits claimed by
// more than one field.
func NewMap(regs []Register, fields []Field) (*Map, error) {
	m := &Map{
		regs:   make([]Register, 0, len(regs)),
		byAddr: make(map[Addr]int, len(regs)),
		fields: make([]Field, 0, len(fields)),
		byName: make(map[Name]int, len(fields)),
		byReg:  make(map[Addr][]Name),
	}

	for _, reg := range regs {
		if _, dup := m.byAddr[reg.Addr]; dup {
			return nil, errdefs.Validation("build map", reg.String(), "duplicate register address")
		}
		m.byAddr[reg.Addr] = len(m.regs)
		m.regs = append(m.regs, reg)
	}

	claimed := make(map[Addr]map[uint8]Name)
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, errdefs.New(errdefs.ErrValidation, "build map", string(f.Name), err)
		}
		if _, dup := m.byName[f.Name]; dup {
			return nil, errdefs.Validation("build map", string(f.Name), "duplicate field name")
		}

		f.AutoReset = false
		segs := make([]Segment, len(f.Segments))
		copy(segs, f.Segments)
		f.Segments = segs

		for _, seg := range f.Segments {
			i, ok := m.byAddr[seg.Addr]
			if !ok {
				return nil, errdefs.Validation("build map", string(f.Name),
					"segment references undeclared register %s", seg.Addr)
			}
			if m.regs[i].AutoReset {
				f.AutoReset = true
			}
			bits := claimed[seg.Addr]
			if bits == nil {
				bits = make(map[uint8]Name)
				claimed[seg.Addr] = bits
			}
			for b := seg.Offset; b < seg.Offset+seg.Width; b++ {
				if other, taken := bits[b]; taken {
					return nil, errdefs.Validation("build map", string(f.Name),
						"bit %d of register %s already claimed by field %s", b, seg.Addr, other)
				}
				bits[b] = f.Name
			}
			m.byReg[seg.Addr] = append(m.byReg[seg.Addr], f.Name)
		}

		m.byName[f.Name] = len(m.fields)
		m.fields = append(m.fields, f)
	}

	return m, nil
}

// MustNewMap is like NewMap but panics if the description is invalid.
// It is meant for static tables initialised at program start.
func MustNewMap(regs []Register, fields []Field) *Map {
	m, err := NewMap(regs, fields)
	if err != nil {
		panic(fmt.Errorf("regmap: invalid register map: %w", err))
	}
	return m
}

// Registers returns all registers in declaration order.
func (m *Map) Registers() []Register {
	regs := make([]Register, len(m.regs))
	copy(regs, m.regs)
	return regs
}

// Fields returns all fields in declaration order.
func (m *Map) Fields() []Field {
	fields := make([]Field, len(m.fields))
	copy(fields, m.fields)
	return fields
}

// Addrs returns all register addresses in declaration order.
func (m *Map) Addrs() []Addr {
	addrs := make([]Addr, len(m.regs))
	for i, reg := range m.regs {
		addrs[i] = reg.Addr
	}
	return addrs
}

// Register returns the register at addr.
func (m *Map) Register(addr Addr) (Register, bool) {
	i, ok := m.byAddr[addr]
	if !ok {
		return Register{}, false
	}
	return m.regs[i], true
}

// RegisterByName returns the register with the given name.
func (m *Map) RegisterByName(name string) (Register, bool) {
	for _, reg := range m.regs {
		if reg.Name == name {
			return reg, true
		}
	}
	return Register{}, false
}

// Field returns the field with the given name.
func (m *Map) Field(name Name) (Field, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[i], true
}

// FieldsOf returns the names of the fields overlaying the register at addr.
func (m *Map) FieldsOf(addr Addr) []Name {
	names := make([]Name, len(m.byReg[addr]))
	copy(names, m.byReg[addr])
	return names
}

// Names returns every field name in sorted order.
func (m *Map) Names() []Name {
	names := make([]Name, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.Name
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (m *Map) field(name Name) (*Field, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return &m.fields[i], true
}

func (m *Map) register(addr Addr) (*Register, bool) {
	i, ok := m.byAddr[addr]
	if !ok {
		return nil, false
	}
	return &m.regs[i], true
}
