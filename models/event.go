package models

import "time"

// EventType is the "type" field of a pushed or locally synthesised event.
type EventType string

// Server-pushed event types consumed by the state layer.
const (
	EventHealthCheck                  EventType = "health.check"
	EventConnectionChanged            EventType = "connection.changed"
	EventConnectionRecovered          EventType = "connection.recovered"
	EventMessageNew                   EventType = "message.new"
	EventNotificationMessageNew       EventType = "notification.message_new"
	EventNotificationMarkRead         EventType = "notification.mark_read"
	EventNotificationMutesUpdated     EventType = "notification.mutes_updated"
	EventUserUpdated                  EventType = "user.updated"
	EventChannelTruncated             EventType = "channel.truncated"
	EventNotificationChannelTruncated EventType = "notification.channel_truncated"
	EventNotificationChannelDeleted   EventType = "notification.channel_deleted"
)

// Local event types emitted by the socket itself; the backend never sends
// them.
const (
	EventConnecting   EventType = "connection.connecting"
	EventDisconnected EventType = "connection.disconnected"
	EventError        EventType = "connection.error"
)

// IsLocal reports whether t is synthesised by the client.
func (t EventType) IsLocal() bool {
	switch t {
	case EventConnecting, EventDisconnected, EventError:
		return true
	}
	return false
}

// Event is a single message received over the socket. Only the fields the
// state layer reads are decoded; the rest of the payload is ignored.
type Event struct {
	Type         EventType `json:"type"`
	ConnectionID string    `json:"connection_id,omitempty"`
	CID          string    `json:"cid,omitempty"`
	ChannelType  string    `json:"channel_type,omitempty"`
	ChannelID    string    `json:"channel_id,omitempty"`

	// Me is set on health checks and notification events and carries the
	// connected user with fresh unread counters.
	Me *User `json:"me,omitempty"`

	// User is the actor of the event.
	User *User `json:"user,omitempty"`

	// Online is meaningful only for connection.changed.
	Online bool `json:"online,omitempty"`

	TotalUnreadCount *int `json:"total_unread_count,omitempty"`
	UnreadChannels   *int `json:"unread_channels,omitempty"`

	CreatedAt  time.Time `json:"created_at,omitzero"`
	ReceivedAt time.Time `json:"-"`

	// Err is set on local connection.error events.
	Err error `json:"-"`
}

// NewLocalEvent builds a client-side event of type t stamped with the
// current time.
func NewLocalEvent(t EventType) Event {
	now := time.Now()
	return Event{Type: t, CreatedAt: now, ReceivedAt: now}
}
