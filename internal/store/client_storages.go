package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
)

// ClientStorages groups the client-side repositories so they can be passed
// to the service layer as one value.
type ClientStorages struct {
	// SyncStateRepository stores active channels and sync timestamps.
	SyncStateRepository SyncStateRepository

	// UserRepository caches the last connected user.
	UserRepository UserRepository

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN (an empty DSN or
// "memory" selects an in-memory database), applies pending migrations and
// wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, logger), nil
}

func newClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		SyncStateRepository: NewSyncStateRepository(db, logger),
		UserRepository:      NewUserRepository(db, logger),
		db:                  db,
	}
}

// Close releases the underlying database.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
