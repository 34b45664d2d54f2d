package usbserial

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// ack frames a device message with a valid checksum.
func ack(cmd string, payload []byte) []byte {
	body := append([]byte(cmd), payload...)
	length := []byte(fmt.Sprintf("%04X", len(body)+checksumLen))
	sum := checksum(length, body)
	msg := append([]byte(msgPrefix), length...)
	msg = append(msg, body...)
	return append(msg, []byte(fmt.Sprintf("%04X", sum))...)
}

// gfraPayload builds an 80x62 GFRA payload whose header words count up
// from 1000 and whose pixel words count up from 0.
func gfraPayload() []byte {
	p := make([]byte, 10240)
	for i := 0; i < 80; i++ {
		binary.LittleEndian.PutUint16(p[160+2*i:], uint16(1000+i))
	}
	for i := 0; i < 4960; i++ {
		binary.LittleEndian.PutUint16(p[320+2*i:], uint16(i))
	}
	return p
}

// fakePort answers commands through respond and serves queued input.
type fakePort struct {
	mu      sync.Mutex
	in      bytes.Buffer
	written [][]byte
	respond func(cmd []byte) []byte
	closed  bool
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	if p.in.Len() == 0 {
		p.mu.Unlock()
		time.Sleep(time.Millisecond)
		return 0, nil
	}
	defer p.mu.Unlock()
	return p.in.Read(b)
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, bytes.Clone(b))
	if p.respond != nil {
		p.in.Write(p.respond(b))
	}
	return len(b), nil
}

func (p *fakePort) feed(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in.Write(b)
}

func (p *fakePort) SetReadTimeout(time.Duration) error { return nil }

func (p *fakePort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in.Reset()
	return nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
