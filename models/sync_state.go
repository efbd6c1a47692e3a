package models

import "time"

// SyncState is persisted per user so that active channels can be recovered
// after the process restarts.
type SyncState struct {
	UserID           string
	ActiveChannelIDs []string
	LastSyncedAt     *time.Time
	MarkedAllReadAt  *time.Time
}
