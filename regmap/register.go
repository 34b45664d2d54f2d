package regmap

import "fmt"

// Addr is the address of an 8-bit device register.
type Addr uint8

func (a Addr) String() string {
	return fmt.Sprintf("0x%02X", uint8(a))
}

// Register is the static definition of one device register.
//
// The identity of a register (address, access flags, auto-reset) never
// changes; its value lives in the Store cache.
type Register struct {
	Name     string
	Addr     Addr
	Readable bool
	Writable bool

	// AutoReset marks registers the device may change on its own
	// (status and self-clearing command bits). Reads always bypass the
	// cache for those.
	AutoReset bool

	Desc string
}

// Access returns "R", "W", "RW" or "NA".
func (r Register) Access() string {
	var s string
	if r.Readable {
		s += "R"
	}
	if r.Writable {
		s += "W"
	}
	if s == "" {
		return "NA"
	}
	return s
}

func (r Register) String() string {
	return fmt.Sprintf("%s %s", r.Addr, r.Name)
}
