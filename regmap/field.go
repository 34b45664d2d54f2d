package regmap

import (
	"fmt"
	"strconv"
)

// Name is the unique name of a field.
type Name string

// Segment is the part of a field stored in a single register:
// Width bits starting at bit Offset (bit 0 is the least significant).
type Segment struct {
	Addr   Addr
	Offset uint8
	Width  uint8
}

func (s Segment) mask() uint8 {
	return uint8(((1 << s.Width) - 1) << s.Offset)
}

// Lookup returns the value of another field from the cached register
// snapshot. It never performs device I/O.
type Lookup func(name Name) (uint32, bool)

// Formatter renders a field value for display. Formatters that depend on
// other fields (units, selectors) read them through lookup.
type Formatter func(v uint32, lookup Lookup) string

// Field is a named view over bits of one or more registers.
//
// Segments are ordered most-significant first: the first segment holds
// the high bits of the value and the last one its low bits.
type Field struct {
	Name     Name
	Group    string
	Readable bool
	Writable bool
	Type     string
	Desc     string
	Help     string
	Segments []Segment

	// Enum maps values to display strings. Values missing from the
	// map display as "N/A".
	Enum map[uint32]string

	// Format overrides Enum for values needing a computed rendering.
	Format Formatter

	// AutoReset is derived when the field is added to a Map: it is true
	// if any register the field spans is auto-reset.
	AutoReset bool
}

// Width returns the total number of bits of the field.
func (f Field) Width() int {
	n := 0
	for _, seg := range f.Segments {
		n += int(seg.Width)
	}
	return n
}

// Max returns the exclusive upper bound of the field's values.
func (f Field) Max() uint64 {
	return 1 << f.Width()
}

// Addrs returns the register addresses spanned by the field, most
// significant first.
func (f Field) Addrs() []Addr {
	addrs := make([]Addr, len(f.Segments))
	for i, seg := range f.Segments {
		addrs[i] = seg.Addr
	}
	return addrs
}

func (f Field) String() string {
	return string(f.Name)
}

// Decode assembles the field value from raw register bytes. It reports
// false if one of the spanned registers is missing from vals.
func (f Field) Decode(vals map[Addr]uint8) (uint32, bool) {
	var v uint32
	for _, seg := range f.Segments {
		raw, ok := vals[seg.Addr]
		if !ok {
			return 0, false
		}
		part := uint32(raw&seg.mask()) >> seg.Offset
		v = v<<seg.Width | part
	}
	return v, true
}

// update is the change to apply to one register to store a field value.
type update struct {
	addr Addr
	mask uint8
	bits uint8
}

// encode splits v into per-register updates, in segment order.
// v must fit in the field width.
func (f Field) encode(v uint32) []update {
	ups := make([]update, len(f.Segments))
	shift := f.Width()
	for i, seg := range f.Segments {
		shift -= int(seg.Width)
		part := uint8(v>>shift) & (1<<seg.Width - 1)
		ups[i] = update{addr: seg.Addr, mask: seg.mask(), bits: part << seg.Offset}
	}
	return ups
}

// Display renders v using the field's formatter or enum map.
func (f Field) Display(v uint32, lookup Lookup) string {
	switch {
	case f.Format != nil:
		return f.Format(v, lookup)
	case f.Enum != nil:
		if s, ok := f.Enum[v]; ok {
			return s
		}
		return "N/A"
	default:
		return strconv.FormatUint(uint64(v), 10)
	}
}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field without name")
	}
	if len(f.Segments) == 0 {
		return fmt.Errorf("field %s has no segments", f.Name)
	}
	seen := make(map[Addr]bool, len(f.Segments))
	for _, seg := range f.Segments {
		if seg.Width == 0 {
			return fmt.Errorf("field %s: zero-width segment in register %s", f.Name, seg.Addr)
		}
		if int(seg.Offset)+int(seg.Width) > 8 {
			return fmt.Errorf("field %s: bits [%d, %d) overflow register %s",
				f.Name, seg.Offset, int(seg.Offset)+int(seg.Width), seg.Addr)
		}
		if seen[seg.Addr] {
			return fmt.Errorf("field %s spans register %s twice", f.Name, seg.Addr)
		}
		seen[seg.Addr] = true
	}
	if f.Width() > 32 {
		return fmt.Errorf("field %s is %d bits wide, at most 32 supported", f.Name, f.Width())
	}
	return nil
}
