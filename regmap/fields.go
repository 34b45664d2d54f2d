package regmap

import (
	"slices"
	"strings"

	"github.com/jonas-koeritz/senxor/errdefs"
)

// Fields reads and writes named fields through a Store.
//
// Multi-register fields and SetFields are not atomic: if a round-trip
// fails partway, the registers written before the failure keep their new
// values and nothing is rolled back.
type Fields struct {
	s *Store
}

// NewFields returns the field overlay of s.
func NewFields(s *Store) *Fields {
	return &Fields{s: s}
}

// Map returns the register map the fields are defined on.
func (f *Fields) Map() *Map {
	return f.s.m
}

// Store returns the underlying register store.
func (f *Fields) Store() *Store {
	return f.s
}

// Get returns the value of the named field. Each spanned register is read
// through the store, so the cache policy applies per register.
func (f *Fields) Get(name Name) (uint32, error) {
	fd, err := f.lookup("get", name)
	if err != nil {
		return 0, err
	}

	vals := make(map[Addr]uint8, len(fd.Segments))
	for _, seg := range fd.Segments {
		v, err := f.s.Read(seg.Addr)
		if err != nil {
			return 0, err
		}
		vals[seg.Addr] = v
	}
	v, _ := fd.Decode(vals)
	return v, nil
}

// GetMany returns the values of the named fields, fetching every register
// not served from cache in one round-trip.
func (f *Fields) GetMany(names []Name) (map[Name]uint32, error) {
	fds := make([]*Field, 0, len(names))
	seen := make(map[Addr]bool)
	var addrs []Addr
	for _, name := range names {
		fd, err := f.lookup("get", name)
		if err != nil {
			return nil, err
		}
		fds = append(fds, fd)
		for _, seg := range fd.Segments {
			if !seen[seg.Addr] {
				seen[seg.Addr] = true
				addrs = append(addrs, seg.Addr)
			}
		}
	}

	regs, err := f.s.ReadMany(addrs)
	if err != nil {
		return nil, err
	}

	out := make(map[Name]uint32, len(fds))
	for _, fd := range fds {
		out[fd.Name], _ = fd.Decode(regs)
	}
	return out, nil
}

// Set writes v to the named field, preserving the bits of the other
// fields sharing its registers. v must be below 2^width.
func (f *Fields) Set(name Name, v uint32) error {
	fd, err := f.checkSet(name, v)
	if err != nil {
		return err
	}
	return f.apply(fd, v)
}

// SetFields validates every entry, then writes them. Updates landing in
// the same register are merged into one read-modify-write; registers are
// written in the order they first appear in the map's field declarations.
// Nothing is written if any entry is invalid; a transport failure partway
// leaves the earlier registers written.
func (f *Fields) SetFields(vals map[Name]uint32) error {
	for name, v := range vals {
		if _, err := f.checkSet(name, v); err != nil {
			return err
		}
	}

	var merged []update
	subjects := make(map[Addr][]string)
	for i := range f.s.m.fields {
		fd := &f.s.m.fields[i]
		v, ok := vals[fd.Name]
		if !ok {
			continue
		}
		for _, up := range fd.encode(v) {
			j := slices.IndexFunc(merged, func(u update) bool { return u.addr == up.addr })
			if j < 0 {
				merged = append(merged, up)
			} else {
				merged[j].mask |= up.mask
				merged[j].bits |= up.bits
			}
			subjects[up.addr] = append(subjects[up.addr], string(fd.Name))
		}
	}

	for _, up := range merged {
		if err := f.s.modify("set", strings.Join(subjects[up.addr], ","), up.addr, up.mask, up.bits); err != nil {
			return err
		}
	}
	f.s.log.Debug("fields set", "fields", len(vals), "registers", len(merged))
	return nil
}

// Display returns the display string of the named field's current value.
// Fields the rendering depends on are taken from the cached snapshot.
func (f *Fields) Display(name Name) (string, error) {
	v, err := f.Get(name)
	if err != nil {
		return "", err
	}
	fd, _ := f.s.m.field(name)
	return fd.Display(v, f.lookupFunc(f.s.Status())), nil
}

// Format renders v as a value of the named field without reading it.
func (f *Fields) Format(name Name, v uint32) (string, error) {
	fd, err := f.lookup("format", name)
	if err != nil {
		return "", err
	}
	return fd.Display(v, f.lookupFunc(f.s.Status())), nil
}

// Status returns the value of every field whose registers are all cached.
// It performs no I/O.
func (f *Fields) Status() map[Name]uint32 {
	snap := f.s.Status()
	out := make(map[Name]uint32, len(f.s.m.fields))
	for i := range f.s.m.fields {
		fd := &f.s.m.fields[i]
		if v, ok := fd.Decode(snap); ok {
			out[fd.Name] = v
		}
	}
	return out
}

func (f *Fields) lookupFunc(snap map[Addr]uint8) Lookup {
	return func(name Name) (uint32, bool) {
		fd, ok := f.s.m.field(name)
		if !ok {
			return 0, false
		}
		return fd.Decode(snap)
	}
}

func (f *Fields) lookup(op string, name Name) (*Field, error) {
	fd, ok := f.s.m.field(name)
	if !ok {
		return nil, errdefs.Validation(op, string(name), "unknown field")
	}
	return fd, nil
}

func (f *Fields) checkSet(name Name, v uint32) (*Field, error) {
	fd, err := f.lookup("set", name)
	if err != nil {
		return nil, err
	}
	if !fd.Writable {
		return nil, errdefs.Validation("set", string(name), "field is read-only")
	}
	if uint64(v) >= fd.Max() {
		return nil, errdefs.Validation("set", string(name),
			"value %d out of range [0, %d)", v, fd.Max())
	}
	for _, seg := range fd.Segments {
		if reg, _ := f.s.m.register(seg.Addr); !reg.Writable {
			return nil, errdefs.Validation("set", string(name), "register %s is read-only", reg)
		}
	}
	return fd, nil
}

func (f *Fields) apply(fd *Field, v uint32) error {
	for _, up := range fd.encode(v) {
		if err := f.s.modify("set", string(fd.Name), up.addr, up.mask, up.bits); err != nil {
			return err
		}
	}
	f.s.log.Debug("field set", "field", fd.Name, "value", v)
	return nil
}
