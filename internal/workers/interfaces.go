// Package workers runs the long-lived background loops of the client app
// side by side and stops them together.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the loop
// fails. Returning nil or ctx.Err() after cancellation is a clean exit.
//
// Example implementation:
//
//	type pump struct{ chat service.ChatService }
//
//	func (p *pump) Run(ctx context.Context) error {
//	    return p.chat.Run(ctx)
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
