// Package reader runs a frame producer on a background goroutine and fans
// every frame out to registered listeners.
//
// Listeners run one after the other on a single dispatch goroutine. A
// frame becoming ready while the listeners are still busy with the
// previous one stops the reader with errdefs.ErrBacklog; frames are never
// queued behind a slow listener.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jonas-koeritz/senxor/errdefs"
)

// Producer returns the next frame. It may block until one is available
// and must return once ctx is done.
type Producer[T any] func(ctx context.Context) (T, error)

// State is the lifecycle state of a Reader.
type State int32

const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type config struct {
	log     *slog.Logger
	onStart func() error
	onStop  func() error
}

// Option configures a Reader.
type Option func(*config)

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.log = logger
	}
}

// WithStartHook runs fn before the goroutines are started. Start fails if
// fn fails.
func WithStartHook(fn func() error) Option {
	return func(c *config) {
		c.onStart = fn
	}
}

// WithStopHook runs fn once the goroutines of a run have exited, whether
// the run was stopped or failed. Its error is logged and otherwise ignored.
func WithStopHook(fn func() error) Option {
	return func(c *config) {
		c.onStop = fn
	}
}

// Reader pulls frames from a Producer in the background.
type Reader[T any] struct {
	produce Producer[T]
	cfg     config
	log     *slog.Logger

	listeners registry[T]

	mu       sync.Mutex
	state    State
	err      error
	latest   T
	seq      uint64
	consumed uint64
	ready    chan struct{} // closed and replaced on every frame
	cancel   context.CancelFunc
	done     chan struct{}

	busy       atomic.Bool
	handoff    chan T
	dispatcher atomic.Int64 // goroutine running the listeners
}

// New returns a stopped reader for produce.
func New[T any](produce Producer[T], opts ...Option) *Reader[T] {
	cfg := config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reader[T]{
		produce: produce,
		cfg:     cfg,
		log:     cfg.log.With("component", "reader"),
		ready:   make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (r *Reader[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start launches the acquisition and dispatch goroutines. Starting a
// running reader does nothing; starting a reader that is being stopped
// fails with errdefs.ErrState.
func (r *Reader[T]) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case Starting, Running:
		return nil
	case Stopping:
		return errdefs.State("start", "reader is stopping")
	}
	r.state = Starting

	if r.cfg.onStart != nil {
		if err := r.cfg.onStart(); err != nil {
			r.state = Stopped
			return fmt.Errorf("start reader: %w", err)
		}
	}

	var zero T
	r.err = nil
	r.latest = zero
	r.seq, r.consumed = 0, 0
	r.busy.Store(false)
	r.dispatcher.Store(0)
	r.handoff = make(chan T, 1)
	r.done = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)
	handoff := r.handoff
	g.Go(func() error { return r.acquire(gctx, handoff) })
	g.Go(func() error { return r.dispatchLoop(gctx, handoff) })
	go r.finish(g, r.done)

	r.state = Running
	r.log.Info("reader started")
	return nil
}

// Stop stops the goroutines and waits until they have exited, so no
// listener is running once Stop returns. It returns the error that ended
// the run, if any. Stopping a stopped reader is a no-op.
//
// A listener may call Stop. The run is cancelled and Stop returns at once;
// the goroutines exit after the listener returns.
func (r *Reader[T]) Stop() error {
	r.mu.Lock()
	if r.state == Running || r.state == Starting {
		r.state = Stopping
		r.cancel()
	}
	done := r.done
	r.mu.Unlock()

	if done == nil {
		return nil
	}
	if r.dispatcher.Load() == goroutineID() {
		r.log.Debug("stop requested by listener")
		return nil
	}
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.err
	r.err = nil
	return err
}

// Read returns the latest frame if it is newer than the one returned by
// the previous Read. With block set it waits for such a frame; otherwise
// it reports false when there is none. Read fails with errdefs.ErrState
// if the reader is not running, and with the terminal error once the run
// has failed.
func (r *Reader[T]) Read(ctx context.Context, block bool) (T, bool, error) {
	var zero T

	r.mu.Lock()
	for {
		if r.err != nil {
			err := r.err
			r.mu.Unlock()
			return zero, false, err
		}
		if state := r.state; state != Running {
			r.mu.Unlock()
			return zero, false, errdefs.State("read", "reader is %s, call Start first", state)
		}
		if r.seq > r.consumed {
			r.consumed = r.seq
			v := r.latest
			r.mu.Unlock()
			return v, true, nil
		}
		if !block {
			r.mu.Unlock()
			return zero, false, nil
		}

		ready := r.ready
		r.mu.Unlock()
		select {
		case <-ready:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
		r.mu.Lock()
	}
}

// AddListener registers fn under name and returns the effective name. An
// empty name is replaced by a generated "listener_N". Registering a name
// twice fails with errdefs.ErrValidation.
func (r *Reader[T]) AddListener(name string, fn func(T)) (string, error) {
	return r.listeners.add(name, fn)
}

// RemoveListener unregisters the listener called name. Removing an
// unknown name is not an error.
func (r *Reader[T]) RemoveListener(name string) {
	r.listeners.remove(name)
}

// Listeners returns the registered names in registration order.
func (r *Reader[T]) Listeners() []string {
	return r.listeners.names()
}

func (r *Reader[T]) acquire(ctx context.Context, handoff chan<- T) error {
	for {
		v, err := r.produce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("produce frame: %w", err)
		}

		seq := r.publish(v)

		if !r.busy.CompareAndSwap(false, true) {
			return errdefs.New(errdefs.ErrBacklog, "dispatch", "", fmt.Errorf(
				"frame %d is ready while listeners still process frame %d; keep listener callbacks lightweight and non-blocking",
				seq, seq-1))
		}
		select {
		case handoff <- v:
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Reader[T]) publish(v T) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latest = v
	r.seq++
	close(r.ready)
	r.ready = make(chan struct{})
	return r.seq
}

func (r *Reader[T]) dispatchLoop(ctx context.Context, handoff <-chan T) error {
	r.dispatcher.Store(goroutineID())
	for {
		select {
		case <-ctx.Done():
			return nil
		case v := <-handoff:
			for _, l := range r.listeners.snapshot() {
				if err := l.call(v); err != nil {
					return err
				}
			}
			r.busy.Store(false)
		}
	}
}

func (r *Reader[T]) finish(g *errgroup.Group, done chan struct{}) {
	err := g.Wait()

	if r.cfg.onStop != nil {
		if herr := r.cfg.onStop(); herr != nil {
			r.log.Warn("stop hook failed", "error", herr)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		r.err = err
		r.log.Error("reader failed", "error", err)
	} else {
		r.log.Info("reader stopped", "frames", r.seq)
	}
	r.state = Stopped
	close(r.ready)
	r.ready = make(chan struct{})
	close(done)
}
