package server

import "context"

// Server defines the lifecycle contract of the bridge server.
type Server interface {
	// Run serves requests until ctx is done, then shuts down gracefully.
	// It returns the listener error if serving failed before that.
	Run(ctx context.Context) error

	// Addr returns the bound address once Run is listening.
	Addr() string
}
