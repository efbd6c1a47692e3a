// Package socket maintains the chat websocket connection.
//
// A connection is established once the backend sends the first message
// carrying "me"; messages before it are dropped. While connected, every
// decoded backend message is forwarded on [Socket.Events], interleaved with
// local events the socket synthesises itself:
//
//   - connection.connecting when a dial starts;
//   - connection.changed with online=true once established;
//   - connection.changed with online=false when the connection is lost or
//     closed, followed by connection.disconnected for an explicit close;
//   - connection.error on dial, handshake and read failures.
//
// The socket never retries on its own. Reconnect is driven by the caller.
package socket

import (
	"context"

	"github.com/MKhiriev/go-chat-sdk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/socket_mock.go -package=mock

// Socket is a single logical chat connection that can be re-established.
type Socket interface {
	// Connect dials the backend for user and blocks until the connection is
	// established, rejected, or ctx is done. An existing connection is
	// closed first.
	Connect(ctx context.Context, user models.User, token string) error

	// Disconnect closes the current connection. It is a no-op when not
	// connected.
	Disconnect()

	// Reconnect connects again with the user and token of the last Connect.
	Reconnect(ctx context.Context) error

	// Events returns the event stream. The channel lives as long as the
	// socket and is shared across reconnects.
	Events() <-chan models.Event

	// ConnectionID returns the id assigned by the backend, or "".
	ConnectionID() string

	// IsConnected reports whether a connection is established.
	IsConnected() bool
}
