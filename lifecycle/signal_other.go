//go:build !unix

package lifecycle

import "context"

// SignalSource has no signals to watch on this platform; the channel only
// closes when ctx is done.
func SignalSource(ctx context.Context) <-chan State {
	out := make(chan State)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}
