package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrNilValue        = errors.New("nil value for validation")

	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidDeviceID     = errors.New("invalid device ID")
	ErrInvalidPushProvider = errors.New("invalid push provider")
	ErrInvalidCID          = errors.New("invalid channel cid")
	ErrInvalidSyncTime     = errors.New("sync time is required")
)
