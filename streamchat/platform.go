package streamchat

import (
	"context"

	"github.com/MKhiriev/go-chat-sdk/lifecycle"
)

// Platform reports application lifecycle transitions of the host.
type Platform interface {
	// Lifecycle streams transitions until ctx is done. The channel may be
	// closed early when the platform has nothing more to report.
	Lifecycle(ctx context.Context) <-chan lifecycle.State
}

// PlatformFunc adapts a function to [Platform].
type PlatformFunc func(ctx context.Context) <-chan lifecycle.State

func (f PlatformFunc) Lifecycle(ctx context.Context) <-chan lifecycle.State {
	return f(ctx)
}

// SignalPlatform maps SIGUSR1/SIGUSR2 to background/foreground.
func SignalPlatform() Platform {
	return PlatformFunc(lifecycle.SignalSource)
}

// ChannelPlatform forwards transitions sent on src.
func ChannelPlatform(src <-chan lifecycle.State) Platform {
	return PlatformFunc(func(context.Context) <-chan lifecycle.State { return src })
}
