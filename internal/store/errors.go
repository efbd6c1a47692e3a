package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSyncStateNotFound is returned when no sync state was persisted for
	// the requested user.
	ErrSyncStateNotFound = errors.New("sync state was not found")

	// ErrUserNotFound is returned when the requested user is not cached
	// locally.
	ErrUserNotFound = errors.New("user was not found")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrEncodingColumn     = errors.New("failed to encode column value")
)
