package reader

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jonas-koeritz/senxor/errdefs"
)

type listener[T any] struct {
	name string
	fn   func(T)
}

// call runs the listener, turning a panic into an error naming it.
func (l listener[T]) call(v T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("listener %s panicked: %v", l.name, p)
		}
	}()
	l.fn(v)
	return nil
}

// registry holds listeners in registration order.
type registry[T any] struct {
	mu      sync.Mutex
	entries []listener[T]
	next    int
}

func (r *registry[T]) add(name string, fn func(T)) (string, error) {
	if fn == nil {
		return "", errdefs.Validation("add listener", name, "nil callback")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		for {
			name = fmt.Sprintf("listener_%d", r.next)
			r.next++
			if r.index(name) < 0 {
				break
			}
		}
	} else if r.index(name) >= 0 {
		return "", errdefs.Validation("add listener", name, "name already registered")
	}

	r.entries = append(r.entries, listener[T]{name: name, fn: fn})
	return name, nil
}

func (r *registry[T]) remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(name); i >= 0 {
		r.entries = slices.Delete(r.entries, i, i+1)
	}
}

func (r *registry[T]) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.entries))
	for i, l := range r.entries {
		names[i] = l.name
	}
	return names
}

func (r *registry[T]) snapshot() []listener[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

func (r *registry[T]) index(name string) int {
	return slices.IndexFunc(r.entries, func(l listener[T]) bool { return l.name == name })
}
