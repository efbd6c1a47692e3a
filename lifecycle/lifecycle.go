// Package lifecycle translates platform foreground/background transitions
// into calls on a Handler.
//
// The chat client implements Handler: going to the background disconnects
// the socket, returning to the foreground reconnects it.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// State is a host process visibility state.
type State int

const (
	Foreground State = iota + 1
	Background
)

// ErrUnknownState is returned by ParseState for unrecognised names.
var ErrUnknownState = errors.New("unknown lifecycle state")

func (s State) String() string {
	switch s {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState accepts "foreground"/"resume" and "background"/"stop",
// case-insensitively.
func ParseState(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "foreground", "resume", "resumed":
		return Foreground, nil
	case "background", "stop", "stopped":
		return Background, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
}

// Handler receives lifecycle callbacks.
type Handler interface {
	Resume()
	Stopped()
}

// HandlerFuncs adapts two functions to Handler. Nil functions are skipped.
type HandlerFuncs struct {
	OnResume  func()
	OnStopped func()
}

func (h HandlerFuncs) Resume() {
	if h.OnResume != nil {
		h.OnResume()
	}
}

func (h HandlerFuncs) Stopped() {
	if h.OnStopped != nil {
		h.OnStopped()
	}
}

// Observer forwards state transitions to its handler. Repeating the current
// state is a no-op.
type Observer struct {
	handler Handler

	mu      sync.Mutex
	current State
}

// NewObserver returns an observer that has not seen any state yet.
func NewObserver(h Handler) *Observer {
	return &Observer{handler: h}
}

// Dispatch moves the observer to s and calls the handler when s differs
// from the current state. It reports whether the handler was called.
func (o *Observer) Dispatch(s State) bool {
	if s != Foreground && s != Background {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == s {
		return false
	}
	o.current = s

	if s == Foreground {
		o.handler.Resume()
	} else {
		o.handler.Stopped()
	}
	return true
}

// Current returns the last dispatched state, or zero before the first one.
func (o *Observer) Current() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Watch dispatches every state received from src until ctx is done or src
// is closed. A closed source returns nil.
func (o *Observer) Watch(ctx context.Context, src <-chan State) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-src:
			if !ok {
				return nil
			}
			o.Dispatch(s)
		}
	}
}
