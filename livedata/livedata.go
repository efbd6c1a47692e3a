package livedata

import (
	"context"
	"sync"
)

// LiveData is the read-only view of an observable value.
type LiveData[T any] interface {
	// Value returns the current value and whether one was ever posted.
	Value() (T, bool)

	// Observe registers fn to be called with every posted value. If a value
	// is already set, fn is called with it before Observe returns. The
	// returned function removes the observer; it is safe to call more than
	// once.
	Observe(fn func(T)) (cancel func())

	// Subscribe returns a channel that receives posted values. The channel
	// buffers only the latest value, so slow readers skip intermediate
	// states. It is closed once ctx is done.
	Subscribe(ctx context.Context) <-chan T
}

type observer[T any] struct {
	id int
	fn func(T)
}

// Mutable is a LiveData that can be written with Post.
//
// Notifications for one holder are delivered sequentially in posting order.
// An observer must not call Post on the holder that is notifying it.
type Mutable[T any] struct {
	// dispatch serialises value changes with observer delivery.
	dispatch sync.Mutex

	mu        sync.RWMutex
	value     T
	set       bool
	nextID    int
	observers []observer[T]
}

var _ LiveData[int] = (*Mutable[int])(nil)

// New returns a holder initialised with value.
func New[T any](value T) *Mutable[T] {
	return &Mutable[T]{value: value, set: true}
}

// Empty returns a holder with no value; observers are not called until the
// first Post.
func Empty[T any]() *Mutable[T] {
	return &Mutable[T]{}
}

// Value implements LiveData.
func (m *Mutable[T]) Value() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set
}

// Post stores v and notifies every observer with it. Last write wins.
func (m *Mutable[T]) Post(v T) {
	m.dispatch.Lock()
	defer m.dispatch.Unlock()

	m.mu.Lock()
	m.value = v
	m.set = true
	targets := make([]observer[T], len(m.observers))
	copy(targets, m.observers)
	m.mu.Unlock()

	for _, o := range targets {
		o.fn(v)
	}
}

// Observe implements LiveData.
func (m *Mutable[T]) Observe(fn func(T)) func() {
	m.dispatch.Lock()
	defer m.dispatch.Unlock()

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers = append(m.observers, observer[T]{id: id, fn: fn})
	v, ok := m.value, m.set
	m.mu.Unlock()

	if ok {
		fn(v)
	}

	var once sync.Once
	return func() {
		once.Do(func() { m.remove(id) })
	}
}

// Subscribe implements LiveData.
func (m *Mutable[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	cancel := m.Observe(func(v T) {
		// only the dispatching goroutine sends, so drain-then-send never blocks
		select {
		case <-ch:
		default:
		}
		ch <- v
	})

	go func() {
		<-ctx.Done()
		m.dispatch.Lock()
		cancel()
		close(ch)
		m.dispatch.Unlock()
	}()

	return ch
}

// Observers returns the number of registered observers.
func (m *Mutable[T]) Observers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

func (m *Mutable[T]) remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.observers {
		if o.id == id {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}
