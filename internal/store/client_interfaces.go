package store

import (
	"context"

	"github.com/MKhiriev/go-chat-sdk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SyncStateRepository persists the per-user sync state.
type SyncStateRepository interface {
	// Insert stores state, replacing any previous state of the same user.
	Insert(ctx context.Context, state models.SyncState) error
	// Select returns the state of userID or [ErrSyncStateNotFound].
	Select(ctx context.Context, userID string) (models.SyncState, error)
}

// UserRepository caches the last known connected user.
type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
}
