// Package senxor drives SenXor/MI48 thermal imaging modules.
//
// A Senxor combines an Interface (usually a USB serial connection) with a
// cached register store, the named fields of the MI48 register map and a
// background frame reader:
//
//	s, err := senxor.Open("")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	r := s.NewReader()
//	r.AddListener("", func(f *senxor.Frame) { ... })
//	if err := r.Start(); err != nil {
//		return err
//	}
package senxor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jonas-koeritz/senxor/errdefs"
	"github.com/jonas-koeritz/senxor/reader"
	"github.com/jonas-koeritz/senxor/regmap"
	"github.com/jonas-koeritz/senxor/usbserial"
)

// Error kinds, see package errdefs.
var (
	ErrTransport  = errdefs.ErrTransport
	ErrValidation = errdefs.ErrValidation
	ErrState      = errdefs.ErrState
	ErrBacklog    = errdefs.ErrBacklog
)

// Interface is a connection to a device able to transfer frames.
type Interface interface {
	regmap.Transport
	ReadFrame(ctx context.Context) (header, data []uint16, err error)
	Close() error
}

type config struct {
	log        *slog.Logger
	stopStream bool
	readAll    bool
	serialOpts []usbserial.Option
}

// Option configures a Senxor.
type Option func(*config)

// WithLogger sets the logger of the device and everything it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// WithStopStreamOnConnect controls whether a running stream is stopped
// when connecting. Enabled by default.
func WithStopStreamOnConnect(stop bool) Option {
	return func(c *config) {
		c.stopStream = stop
	}
}

// WithReadAllOnConnect controls whether every register is read into the
// cache when connecting. Enabled by default.
func WithReadAllOnConnect(readAll bool) Option {
	return func(c *config) {
		c.readAll = readAll
	}
}

// WithSerialOptions passes options to usbserial.Open.
func WithSerialOptions(opts ...usbserial.Option) Option {
	return func(c *config) {
		c.serialOpts = append(c.serialOpts, opts...)
	}
}

// Senxor is a connected SenXor device.
type Senxor struct {
	iface  Interface
	regs   *regmap.Store
	fields *regmap.Fields
	cfg    config
	log    *slog.Logger

	mu      sync.Mutex
	readers []interface{ Stop() error }
	closed  bool
}

// Open connects to the SenXor on the serial port called port. An empty
// port selects the first SenXor found.
func Open(port string, opts ...Option) (*Senxor, error) {
	cfg := newConfig(opts)
	conn, err := usbserial.Open(port, append([]usbserial.Option{usbserial.WithLogger(cfg.log)}, cfg.serialOpts...)...)
	if err != nil {
		return nil, err
	}
	s, err := New(conn, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// New returns a Senxor talking through iface.
func New(iface Interface, opts ...Option) (*Senxor, error) {
	cfg := newConfig(opts)
	regs := regmap.NewStore(regmap.MI48(), iface, regmap.WithLogger(cfg.log))
	s := &Senxor{
		iface:  iface,
		regs:   regs,
		fields: regmap.NewFields(regs),
		cfg:    cfg,
		log:    cfg.log.With("component", "senxor"),
	}

	if cfg.stopStream {
		if err := s.StopStream(); err != nil {
			return nil, fmt.Errorf("failed to stop stream: %w", err)
		}
	}
	if cfg.readAll {
		if _, err := s.regs.ReadAll(); err != nil {
			return nil, fmt.Errorf("failed to read registers: %w", err)
		}
		id, err := s.Identity()
		if err != nil {
			return nil, err
		}
		s.log.Info("connected", "model", id.Model, "serial", id.String())
	}
	return s, nil
}

func newConfig(opts []Option) config {
	cfg := config{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		stopStream: true,
		readAll:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Registers returns the register store.
func (s *Senxor) Registers() *regmap.Store {
	return s.regs
}

// Fields returns the named fields of the device.
func (s *Senxor) Fields() *regmap.Fields {
	return s.fields
}

// StartStream switches the device to continuous capture.
func (s *Senxor) StartStream() error {
	if err := s.fields.Set(regmap.CONTINUOUS_STREAM, 1); err != nil {
		return err
	}
	s.log.Info("stream started")
	return nil
}

// StopStream stops continuous capture.
func (s *Senxor) StopStream() error {
	if err := s.fields.Set(regmap.CONTINUOUS_STREAM, 0); err != nil {
		return err
	}
	s.log.Debug("stream stopped")
	return nil
}

// IsStreaming reports whether the device is in continuous capture.
func (s *Senxor) IsStreaming() (bool, error) {
	v, err := s.fields.Get(regmap.CONTINUOUS_STREAM)
	return v == 1, err
}

// ReadFrame waits for the next frame.
func (s *Senxor) ReadFrame(ctx context.Context) (*Frame, error) {
	header, data, err := s.iface.ReadFrame(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errdefs.Transport("read frame", "", err)
	}
	return newFrame(header, data, time.Now())
}

// NewReader returns a background reader producing frames with ReadFrame.
// Starting the reader starts the stream if it is not running. When the run
// ends, stopped or failed, a stream started that way is stopped again.
// Close stops every reader created here.
func (s *Senxor) NewReader(opts ...reader.Option) *reader.Reader[*Frame] {
	var started bool // hooks of one reader never run concurrently
	base := []reader.Option{
		reader.WithLogger(s.cfg.log),
		reader.WithStartHook(func() error {
			streaming, err := s.IsStreaming()
			if err != nil {
				return err
			}
			started = !streaming
			if started {
				return s.StartStream()
			}
			return nil
		}),
		reader.WithStopHook(func() error {
			if !started {
				return nil
			}
			started = false
			return s.StopStream()
		}),
	}
	r := reader.New(s.ReadFrame, append(base, opts...)...)

	s.mu.Lock()
	s.readers = append(s.readers, r)
	s.mu.Unlock()
	return r
}

// MaxFPS returns the frame rate of the sensor with a divider of 1, or 0
// if it is unknown for the sensor type.
func (s *Senxor) MaxFPS() (float64, error) {
	t, err := s.fields.Get(regmap.SENXOR_TYPE)
	if err != nil {
		return 0, fmt.Errorf("failed to get sensor type: %w", err)
	}
	switch t {
	case 0, 1, 4, 5:
		return 25.5, nil
	case 2:
		return 28.57, nil
	default:
		return 0, nil
	}
}

// SetFramerate selects the divider giving the frame rate closest to
// frameRate and returns the resulting rate.
func (s *Senxor) SetFramerate(frameRate float64) (float64, error) {
	maxFPS, err := s.MaxFPS()
	if err != nil {
		return 0, err
	}
	if frameRate <= 0 || frameRate > maxFPS {
		return 0, errdefs.Validation("set frame rate", "", "invalid target frame rate %f, must be 0 < target <= %f", frameRate, maxFPS)
	}
	divisor := math.Round(maxFPS / frameRate)
	if err := s.fields.Set(regmap.FRAME_RATE_DIVIDER, uint32(divisor)); err != nil {
		return 0, err
	}
	return maxFPS / divisor, nil
}

// Framerate returns the configured frame rate.
func (s *Senxor) Framerate() (float64, error) {
	maxFPS, err := s.MaxFPS()
	if err != nil {
		return 0, err
	}
	divisor, err := s.fields.Get(regmap.FRAME_RATE_DIVIDER)
	if err != nil {
		return 0, fmt.Errorf("failed to read frame rate: %w", err)
	}
	if divisor <= 1 {
		return maxFPS, nil
	}
	return maxFPS / float64(divisor), nil
}

// SetTemperatureOffset sets the offset added to every pixel, in Kelvin.
// The device resolution is 0.1 K.
func (s *Senxor) SetTemperatureOffset(offset float64) error {
	steps := math.Round(offset * 10)
	if steps < math.MinInt8 || steps > math.MaxInt8 {
		return errdefs.Validation("set", string(regmap.OFFSET), "offset %.1f K outside [-12.8, 12.7]", offset)
	}
	return s.fields.Set(regmap.OFFSET, uint32(uint8(int8(steps))))
}

// SetEmissivity sets the target emissivity in percent.
func (s *Senxor) SetEmissivity(percent int) error {
	if percent < 1 || percent > 100 {
		return errdefs.Validation("set", string(regmap.EMISSIVITY), "emissivity %d%% outside [1, 100]", percent)
	}
	return s.fields.Set(regmap.EMISSIVITY, uint32(percent))
}

// MedianMode selects the median filter kernel.
type MedianMode uint8

const (
	MedianDisabled MedianMode = 0
	MedianKernel3  MedianMode = 3
	MedianKernel5  MedianMode = 5
)

// FilterSettings configures the on-device noise filters.
type FilterSettings struct {
	Temporal        uint16 // strength, 0 disables the temporal filter
	RollingAverage  uint8  // depth in frames, 0 disables the rolling average
	StabilizeMinMax bool   // rolling average of the frame min/max
	Median          MedianMode
}

var DefaultFilterSettings = FilterSettings{Temporal: 125, RollingAverage: 4, Median: MedianDisabled}

// SetFilters configures temporal, rolling average, min/max and median
// filtering.
func (s *Senxor) SetFilters(fs FilterSettings) error {
	vals := map[regmap.Name]uint32{
		regmap.TEMPORAL:               uint32(fs.Temporal),
		regmap.TEMPORAL_ENABLE:        0,
		regmap.ROLLING_AVERAGE:        uint32(fs.RollingAverage),
		regmap.ROLLING_AVERAGE_ENABLE: 0,
		regmap.MMS_RA:                 0,
		regmap.MEDIAN_ENABLE:          0,
		regmap.MEDIAN_KERNEL_SIZE:     0,
	}
	if fs.Temporal > 0 {
		vals[regmap.TEMPORAL_ENABLE] = 1
	}
	if fs.RollingAverage > 0 {
		vals[regmap.ROLLING_AVERAGE_ENABLE] = 1
	}
	if fs.StabilizeMinMax {
		vals[regmap.MMS_RA] = 1
	}
	switch fs.Median {
	case MedianDisabled:
	case MedianKernel3:
		vals[regmap.MEDIAN_ENABLE] = 1
	case MedianKernel5:
		vals[regmap.MEDIAN_ENABLE] = 1
		vals[regmap.MEDIAN_KERNEL_SIZE] = 1
	default:
		return errdefs.Validation("set filters", "", "unsupported median kernel size %d", fs.Median)
	}

	if err := s.fields.SetFields(vals); err != nil {
		return fmt.Errorf("failed to set filter settings: %w", err)
	}
	if fs.Temporal > 0 {
		// a new strength only takes effect after re-initialisation
		if err := s.fields.Set(regmap.TEMPORAL_INIT, 1); err != nil {
			return fmt.Errorf("failed to set filter control: %w", err)
		}
	}
	return nil
}

// NETDConfig configures the on-device NETD (noise equivalent temperature
// difference) measurement.
type NETDConfig struct {
	Enabled    bool
	RowInFrame bool // append the NETD row to every frame
	Factor     uint8
	X, Y       uint8 // measured pixel
}

var DefaultNETDConfig = NETDConfig{Factor: 0x14}

// SetNETD configures the NETD measurement. The measured pixel and factor
// are written before the control bits.
func (s *Senxor) SetNETD(cfg NETDConfig) error {
	vals := map[regmap.Name]uint32{
		regmap.NETD_FACTOR:       uint32(cfg.Factor),
		regmap.NETD_PIXEL_X:      uint32(cfg.X),
		regmap.NETD_PIXEL_Y:      uint32(cfg.Y),
		regmap.NETD_ENABLE:       0,
		regmap.NETD_ROW_IN_FRAME: 0,
	}
	if cfg.Enabled {
		vals[regmap.NETD_ENABLE] = 1
		if cfg.RowInFrame {
			vals[regmap.NETD_ROW_IN_FRAME] = 1
		}
	}
	if err := s.fields.SetFields(vals); err != nil {
		return fmt.Errorf("failed to set NETD config: %w", err)
	}
	return nil
}

// FirmwareVersion returns the firmware version as major.minor.build.
func (s *Senxor) FirmwareVersion() (string, error) {
	v, err := s.fields.GetMany([]regmap.Name{regmap.FW_VERSION_MAJOR, regmap.FW_VERSION_MINOR, regmap.FW_VERSION_BUILD})
	if err != nil {
		return "", fmt.Errorf("failed to read firmware version: %w", err)
	}
	return fmt.Sprintf("%d.%d.%d", v[regmap.FW_VERSION_MAJOR], v[regmap.FW_VERSION_MINOR], v[regmap.FW_VERSION_BUILD]), nil
}

// Identity describes the attached camera module.
type Identity struct {
	SenxorType uint32
	Model      string
	ModuleType uint32
	MCU        string
	Year       int
	Week       uint32
	Fab        uint32
	Serial     uint32
}

func (id Identity) String() string {
	return fmt.Sprintf("Week: %2d; Year: %4d; Fab: %02X; Serial: %06X", id.Week, id.Year, id.Fab, id.Serial)
}

// Identity reads the type and production data of the module.
func (s *Senxor) Identity() (Identity, error) {
	v, err := s.fields.GetMany([]regmap.Name{
		regmap.SENXOR_TYPE, regmap.MODULE_TYPE, regmap.MCU_TYPE,
		regmap.PRODUCTION_YEAR, regmap.PRODUCTION_WEEK, regmap.MANUF_LOCATION, regmap.SERIAL_NUMBER,
	})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to read camera ID: %w", err)
	}

	id := Identity{
		SenxorType: v[regmap.SENXOR_TYPE],
		Model:      regmap.SenxorTypes[v[regmap.SENXOR_TYPE]],
		ModuleType: v[regmap.MODULE_TYPE],
		MCU:        regmap.MCUTypes[v[regmap.MCU_TYPE]],
		Year:       int(v[regmap.PRODUCTION_YEAR]) + 2000,
		Week:       v[regmap.PRODUCTION_WEEK],
		Fab:        v[regmap.MANUF_LOCATION],
		Serial:     v[regmap.SERIAL_NUMBER],
	}
	if id.Model == "" {
		id.Model = fmt.Sprintf("unknown (%d)", id.SenxorType)
	}
	return id, nil
}

// Shape returns the frame size of the sensor.
func (s *Senxor) Shape() (width, height int, err error) {
	t, err := s.fields.Get(regmap.SENXOR_TYPE)
	if err != nil {
		return 0, 0, err
	}
	if t == 6 {
		return 160, 120, nil
	}
	return 80, 62, nil
}

// Close stops the readers created by NewReader, stops the stream and
// closes the interface.
func (s *Senxor) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	readers := s.readers
	s.readers = nil
	s.mu.Unlock()

	for _, r := range readers {
		if err := r.Stop(); err != nil {
			s.log.Warn("reader stopped with error", "error", err)
		}
	}
	if err := s.StopStream(); err != nil {
		s.log.Warn("failed to stop stream", "error", err)
	}
	return s.iface.Close()
}
