package streamchat

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// ErrNotInitialized is returned by [Instance] before a successful [Init].
var ErrNotInitialized = errors.New("you must initialize the API client first")

var (
	initMu   sync.Mutex
	instance atomic.Pointer[Client]
)

// Init builds the process-wide client once. Later calls are no-ops that
// return true; a failed first call returns false and may be retried.
func Init(apiKey string, opts Options, platform Platform) bool {
	if instance.Load() != nil {
		return true
	}

	initMu.Lock()
	defer initMu.Unlock()
	if instance.Load() != nil {
		return true
	}

	opts.APIKey = apiKey
	c, err := NewClient(opts, platform)
	if err != nil {
		log.Error().Err(err).Msg("chat client initialization failed")
		return false
	}
	instance.Store(c)
	return true
}

// Instance returns the client created by Init.
func Instance() (*Client, error) {
	c := instance.Load()
	if c == nil {
		return nil, ErrNotInitialized
	}
	return c, nil
}

// MustInstance is like Instance but panics before Init.
func MustInstance() *Client {
	c, err := Instance()
	if err != nil {
		panic(err.Error())
	}
	return c
}

// IsConnected reports whether the process-wide client has a live socket.
func IsConnected() bool {
	c := instance.Load()
	return c != nil && c.IsConnected()
}
