package regmap

import (
	"errors"
	"sync"
)

var errLinkDown = errors.New("link down")

// fakeTransport is an in-memory device counting round-trips.
type fakeTransport struct {
	mu     sync.Mutex
	regs   map[uint8]uint8
	reads  int
	writes int
	bulk   int

	failRead  bool
	failWrite bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{regs: make(map[uint8]uint8)}
}

func (t *fakeTransport) ReadRegister(addr uint8) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failRead {
		return 0, errLinkDown
	}
	t.reads++
	return t.regs[addr], nil
}

func (t *fakeTransport) WriteRegister(addr, value uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failWrite {
		return errLinkDown
	}
	t.writes++
	t.regs[addr] = value
	return nil
}

func (t *fakeTransport) ReadRegisters(addrs []uint8) (map[uint8]uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failRead {
		return nil, errLinkDown
	}
	t.bulk++
	out := make(map[uint8]uint8, len(addrs))
	for _, addr := range addrs {
		out[addr] = t.regs[addr]
	}
	return out, nil
}

func (t *fakeTransport) set(addr Addr, v uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.regs[uint8(addr)] = v
}

func (t *fakeTransport) get(addr Addr) uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.regs[uint8(addr)]
}

func (t *fakeTransport) trips() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reads + t.writes + t.bulk
}
