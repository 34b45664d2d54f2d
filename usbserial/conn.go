// Package usbserial talks to a SenXor/MI48 over its USB-CDC serial port.
package usbserial

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Port is the subset of serial.Port used by Conn.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

var openPort = func(name string) (Port, error) {
	// Baud rate and framing are irrelevant for a USB-CDC device.
	return serial.Open(name, &serial.Mode{})
}

const (
	defaultPollTimeout  = 200 * time.Millisecond
	defaultAckTimeout   = time.Second
	defaultFrameTimeout = time.Second
)

type config struct {
	log            *slog.Logger
	ackTimeout     time.Duration
	frameTimeout   time.Duration
	verifyFrames   bool
	resetOnConnect bool
}

// Option configures a Conn.
type Option func(*config)

// WithLogger sets the logger of the connection.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// WithAckTimeout bounds the wait for a register acknowledgement.
func WithAckTimeout(d time.Duration) Option {
	return func(c *config) {
		c.ackTimeout = d
	}
}

// WithFrameTimeout bounds the wait for a frame in ReadFrame. A frame kept
// back while waiting for a register acknowledgement is discarded once it
// is older than d.
func WithFrameTimeout(d time.Duration) Option {
	return func(c *config) {
		c.frameTimeout = d
	}
}

// WithFrameChecksum enables checksum verification of GFRA messages.
// Register acknowledgements are always verified.
func WithFrameChecksum(verify bool) Option {
	return func(c *config) {
		c.verifyFrames = verify
	}
}

// Conn is an open serial connection to a SenXor. It is safe for
// concurrent use; exchanges are serialised.
type Conn struct {
	name string
	port Port
	cfg  config
	log  *slog.Logger

	mu        sync.Mutex
	pending   []byte // GFRA payload received while waiting for an ack
	pendingAt time.Time
	closed    bool
}

// Open opens the serial port called name. With an empty name the first
// port returned by Discover is used.
func Open(name string, opts ...Option) (*Conn, error) {
	if name == "" {
		ports, err := Discover()
		if err != nil {
			return nil, fmt.Errorf("failed to open SenXor device: %w", err)
		}
		if len(ports) == 0 {
			return nil, fmt.Errorf("failed to open SenXor device: no port found")
		}
		name = ports[0].Name
	}

	p, err := openPort(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open SenXor device %s: %w", name, err)
	}
	if err := p.SetReadTimeout(defaultPollTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", name, err)
	}

	c := New(name, p, opts...)
	if err := p.ResetInputBuffer(); err != nil {
		c.log.Warn("failed to reset input buffer", "error", err)
	}
	return c, nil
}

// New wraps an already open port.
func New(name string, p Port, opts ...Option) *Conn {
	cfg := config{
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		ackTimeout:   defaultAckTimeout,
		frameTimeout: defaultFrameTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Conn{
		name: name,
		port: p,
		cfg:  cfg,
		log:  cfg.log.With("port", name),
	}
}

// Name returns the name of the serial port.
func (c *Conn) Name() string {
	return c.name
}

// ReadRegister reads one register.
func (c *Conn) ReadRegister(addr uint8) (uint8, error) {
	payload, err := c.exchange(rregCommand(addr), cmdRREG)
	if err != nil {
		return 0, fmt.Errorf("failed to read register 0x%02X: %w", addr, err)
	}
	v, err := parseRREG(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to read register 0x%02X: %w", addr, err)
	}
	c.log.Debug("read register", "addr", addr, "value", v)
	return v, nil
}

// WriteRegister writes one register.
func (c *Conn) WriteRegister(addr, value uint8) error {
	payload, err := c.exchange(wregCommand(addr, value), cmdWREG)
	if err == nil {
		err = parseWREG(payload)
	}
	if err != nil {
		return fmt.Errorf("failed to write register 0x%02X: %w", addr, err)
	}
	c.log.Debug("write register", "addr", addr, "value", value)
	return nil
}

// ReadRegisters reads several registers with a single RRSE exchange.
func (c *Conn) ReadRegisters(addrs []uint8) (map[uint8]uint8, error) {
	payload, err := c.exchange(rrseCommand(addrs), cmdRRSE)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d registers: %w", len(addrs), err)
	}
	vals, err := parseRRSE(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d registers: %w", len(addrs), err)
	}
	c.log.Debug("read registers", "count", len(vals))
	return vals, nil
}

// ReadFrame waits for the next GFRA message and returns its header and
// pixel words. The header is nil when the device omits it.
func (c *Conn) ReadFrame(ctx context.Context) (header, data []uint16, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil, fmt.Errorf("failed to read frame: %w", io.ErrClosedPipe)
	}

	payload := c.takePending()
	deadline := time.Now().Add(c.cfg.frameTimeout)
	for payload == nil {
		cmd, p, err := c.readMsg(ctx, deadline)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read frame: %w", err)
		}
		if cmd != cmdGFRA {
			c.log.Warn("dropping unexpected message", "cmd", cmd)
			continue
		}
		payload = p
	}

	header, data, err = parseGFRA(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return header, data, nil
}

// Close closes the serial port.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.pending = nil
	return c.port.Close()
}

func (c *Conn) takePending() []byte {
	p := c.pending
	c.pending = nil
	if p != nil && time.Since(c.pendingAt) > c.cfg.frameTimeout {
		c.log.Debug("discarding stale frame", "age", time.Since(c.pendingAt))
		return nil
	}
	return p
}

// exchange sends msg and returns the payload of the first acknowledgement
// carrying want. Frames arriving in between are kept for ReadFrame.
func (c *Conn) exchange(msg []byte, want string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, io.ErrClosedPipe
	}
	if _, err := c.port.Write(msg); err != nil {
		return nil, fmt.Errorf("failed to write to serial port: %w", err)
	}

	deadline := time.Now().Add(c.cfg.ackTimeout)
	for {
		cmd, payload, err := c.readMsg(context.Background(), deadline)
		if err != nil {
			return nil, err
		}
		switch cmd {
		case want:
			return payload, nil
		case cmdGFRA:
			c.pending = payload
			c.pendingAt = time.Now()
		default:
			return nil, fmt.Errorf("%w: expected %s acknowledgement, got %s", ErrMalformed, want, cmd)
		}
	}
}

// readMsg reads one message, skipping bytes until a message prefix is
// found.
func (c *Conn) readMsg(ctx context.Context, deadline time.Time) (string, []byte, error) {
	header := make([]byte, headerLen)
	if err := c.readFull(ctx, header, deadline); err != nil {
		return "", nil, err
	}
	for !bytes.HasPrefix(header, []byte(msgPrefix)) {
		copy(header, header[1:])
		if err := c.readFull(ctx, header[headerLen-1:], deadline); err != nil {
			return "", nil, err
		}
	}

	n, err := parseLength(header)
	if err != nil {
		return "", nil, err
	}
	body := make([]byte, n)
	if err := c.readFull(ctx, body, deadline); err != nil {
		return "", nil, err
	}

	verify := c.cfg.verifyFrames || string(body[:cmdLen]) != cmdGFRA
	return splitBody(header[len(msgPrefix):], body, verify)
}

// readFull fills buf. The port returns no data on a poll timeout, so the
// deadline and ctx are checked between reads.
func (c *Conn) readFull(ctx context.Context, buf []byte, deadline time.Time) error {
	for off := 0; off < len(buf); {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := c.port.Read(buf[off:])
		if err != nil {
			return fmt.Errorf("failed to read from serial port: %w", err)
		}
		off += n
		if n == 0 && time.Now().After(deadline) {
			return ErrTimeout
		}
	}
	return nil
}
