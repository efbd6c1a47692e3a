package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/models"
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	logger.Debug().Msg("creating sync state repository")
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *syncStateRepository) Insert(ctx context.Context, state models.SyncState) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertSyncStateQuery(state)
	if err != nil {
		log.Err(err).Str("func", "syncStateRepository.Insert").Str("user_id", state.UserID).Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.Insert").
			Str("user_id", state.UserID).
			Msg("failed to execute upsert for sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *syncStateRepository) Select(ctx context.Context, userID string) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSyncStateQuery(userID)
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		state         models.SyncState
		channels      string
		lastSynced    sql.NullTime
		markedAllRead sql.NullTime
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&state.UserID, &channels, &lastSynced, &markedAllRead)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, ErrSyncStateNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.Select").
			Str("user_id", userID).
			Msg("failed to scan sync state row")
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(channels), &state.ActiveChannelIDs); err != nil {
		return models.SyncState{}, fmt.Errorf("%w: active_channel_ids: %w", ErrScanningRow, err)
	}
	if lastSynced.Valid {
		state.LastSyncedAt = &lastSynced.Time
	}
	if markedAllRead.Valid {
		state.MarkedAllReadAt = &markedAllRead.Time
	}

	return state, nil
}
