package socket

import "errors"

var (
	// ErrDial wraps transport failures while opening the websocket.
	ErrDial = errors.New("websocket dial failed")
	// ErrRejected is returned when the backend answers the handshake with an
	// error payload. The payload is joined as *models.ChatError.
	ErrRejected = errors.New("connection rejected")
	// ErrHandshake is returned when the connection closes or times out
	// before the first "me" message arrives.
	ErrHandshake = errors.New("connection handshake failed")
	// ErrNoUser is returned by Reconnect before any Connect.
	ErrNoUser = errors.New("no user to reconnect")
)
