// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chat-sdk/models"
)

const (
	syncStatesTable = "sync_states"
	usersTable      = "users"
)

// sqlite uses "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var (
	syncStateColumns = []string{"user_id", "active_channel_ids", "last_synced_at", "marked_all_read_at"}
	userColumns      = []string{"id", "name", "image", "role", "total_unread_count", "unread_channels", "updated_at"}
)

func buildUpsertSyncStateQuery(state models.SyncState) (string, []any, error) {
	channels := state.ActiveChannelIDs
	if channels == nil {
		channels = []string{}
	}
	encoded, err := json.Marshal(channels)
	if err != nil {
		return "", nil, fmt.Errorf("%w: active_channel_ids: %w", ErrEncodingColumn, err)
	}

	return builder.
		Insert(syncStatesTable).
		Columns(syncStateColumns...).
		Values(state.UserID, string(encoded), nullableTime(state.LastSyncedAt), nullableTime(state.MarkedAllReadAt)).
		Suffix(`ON CONFLICT(user_id) DO UPDATE SET
			active_channel_ids = excluded.active_channel_ids,
			last_synced_at     = excluded.last_synced_at,
			marked_all_read_at = excluded.marked_all_read_at`).
		ToSql()
}

func buildSelectSyncStateQuery(userID string) (string, []any, error) {
	return builder.
		Select(syncStateColumns...).
		From(syncStatesTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
}

func buildUpsertUserQuery(user models.User, now time.Time) (string, []any, error) {
	return builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Image, user.Role, user.TotalUnreadCount, user.UnreadChannels, now).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name               = excluded.name,
			image              = excluded.image,
			role               = excluded.role,
			total_unread_count = excluded.total_unread_count,
			unread_channels    = excluded.unread_channels,
			updated_at         = excluded.updated_at`).
		ToSql()
}

func buildSelectUserQuery(id string) (string, []any, error) {
	return builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
