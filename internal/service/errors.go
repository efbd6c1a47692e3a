package service

import "errors"

var (
	ErrEmptyUserID    = errors.New("user id is empty")
	ErrUserAlreadySet = errors.New("a different user is already connected, disconnect first")
	ErrUserMismatch   = errors.New("token was issued for a different user")
	ErrInvalidToken   = errors.New("invalid user token")
	ErrNoTokenSecret  = errors.New("no api secret to sign development tokens")
	ErrNotConnected   = errors.New("no user is connected")
	ErrEmptyDeviceID  = errors.New("device id is empty")
	ErrInvalidUser    = errors.New("invalid user")
	ErrInvalidDevice  = errors.New("invalid device")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Errors the backend failures are mapped to.
var (
	ErrTokenExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrForbidden             = errors.New("action is not allowed for the connected user")
	ErrNotFound              = errors.New("requested resource was not found")
	ErrRateLimited           = errors.New("too many requests")
	ErrInvalidChannel        = errors.New("invalid channel")
	ErrBackendUnavailable    = errors.New("chat backend is unavailable")
	ErrConnectionRejected    = errors.New("connection was rejected by the backend")
	ErrConnectionFailed      = errors.New("connection failed")
)
