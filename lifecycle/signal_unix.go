//go:build unix

package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalSource maps SIGUSR1 to Background and SIGUSR2 to Foreground. The
// returned channel is closed once ctx is done.
func SignalSource(ctx context.Context) <-chan State {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1, syscall.SIGUSR2)

	out := make(chan State)
	go func() {
		defer close(out)
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigs:
				s := Foreground
				if sig == syscall.SIGUSR1 {
					s = Background
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
