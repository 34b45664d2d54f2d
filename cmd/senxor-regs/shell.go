package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jonas-koeritz/senxor/regmap"
)

var errQuit = errors.New("quit")

const helpText = `Commands:
  regs                    list registers
  fields [GROUP]          list fields
  get NAME [NAME...]      read fields
  set NAME VALUE          write a field
  read REG                read a register (address or name), bypassing the cache
  write REG VALUE         write a register
  readall                 read every register in one round-trip
  status                  show cached field values without device I/O
  help                    show this help
  quit                    exit`

type shell struct {
	fields *regmap.Fields
	out    io.Writer
}

// exec runs one command line. It returns errQuit when the shell should exit.
func (s *shell) exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "regs", "registers":
		return s.regs()
	case "fields":
		return s.listFields(args)
	case "get":
		return s.get(args)
	case "set":
		return s.set(args)
	case "read":
		return s.read(args)
	case "write":
		return s.write(args)
	case "readall":
		return s.readAll()
	case "status":
		return s.status()
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *shell) regs() error {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, r := range s.fields.Map().Registers() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Addr, r.Name, r.Access(), r.Desc)
	}
	return w.Flush()
}

func (s *shell) listFields(args []string) error {
	var group string
	if len(args) > 0 {
		group = strings.ToUpper(args[0])
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, f := range s.fields.Map().Fields() {
		if group != "" && strings.ToUpper(f.Group) != group {
			continue
		}
		access := ""
		if f.Readable {
			access += "R"
		}
		if f.Writable {
			access += "W"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.Name, f.Group, access, f.Width(), f.Desc)
	}
	return w.Flush()
}

func (s *shell) get(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: get NAME [NAME...]")
	}
	names := make([]regmap.Name, len(args))
	for i, a := range args {
		names[i] = regmap.Name(strings.ToUpper(a))
	}
	vals, err := s.fields.GetMany(names)
	if err != nil {
		return err
	}
	for _, n := range names {
		s.printField(n, vals[n])
	}
	return nil
}

func (s *shell) set(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set NAME VALUE")
	}
	name := regmap.Name(strings.ToUpper(args[0]))
	v, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	if err := s.fields.Set(name, uint32(v)); err != nil {
		return err
	}
	got, err := s.fields.Get(name)
	if err != nil {
		return err
	}
	s.printField(name, got)
	return nil
}

func (s *shell) read(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: read REG")
	}
	reg, err := s.register(args[0])
	if err != nil {
		return err
	}
	v, err := s.fields.Store().Refresh(reg.Addr)
	if err != nil {
		return err
	}
	s.printRegister(reg, v)
	return nil
}

func (s *shell) write(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: write REG VALUE")
	}
	reg, err := s.register(args[0])
	if err != nil {
		return err
	}
	v, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	if err := s.fields.Store().Write(reg.Addr, uint8(v)); err != nil {
		return err
	}
	s.printRegister(reg, uint8(v))
	return nil
}

func (s *shell) readAll() error {
	vals, err := s.fields.Store().ReadAll()
	if err != nil {
		return err
	}
	for _, r := range s.fields.Map().Registers() {
		if v, ok := vals[r.Addr]; ok {
			s.printRegister(r, v)
		}
	}
	return nil
}

func (s *shell) status() error {
	vals := s.fields.Status()
	names := make([]regmap.Name, 0, len(vals))
	for n := range vals {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		s.printField(n, vals[n])
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "no cached values, run readall first")
	}
	return nil
}

// register resolves a register by name or by address (0xB1, 177).
func (s *shell) register(arg string) (regmap.Register, error) {
	m := s.fields.Map()
	if r, ok := m.RegisterByName(strings.ToUpper(arg)); ok {
		return r, nil
	}
	addr, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		return regmap.Register{}, fmt.Errorf("unknown register %q", arg)
	}
	r, ok := m.Register(regmap.Addr(addr))
	if !ok {
		return regmap.Register{}, fmt.Errorf("unknown register %s", regmap.Addr(addr))
	}
	return r, nil
}

func (s *shell) printField(name regmap.Name, v uint32) {
	display, err := s.fields.Format(name, v)
	if err != nil {
		display = "?"
	}
	fmt.Fprintf(s.out, "%-24s %6d  %s\n", name, v, display)
}

func (s *shell) printRegister(r regmap.Register, v uint8) {
	fmt.Fprintf(s.out, "%s %-24s 0x%02X  0b%08b\n", r.Addr, r.Name, v, v)
}
