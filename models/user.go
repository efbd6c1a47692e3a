package models

import "time"

// User is a chat user as returned by the backend. The same shape is used for
// the connected user ("me"), event actors and mute targets.
type User struct {
	// ID is the unique user identifier chosen by the integrating application.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name,omitempty"`

	// Image is an avatar URL.
	Image string `json:"image,omitempty"`

	// Role is the backend permission role (e.g. "user", "admin").
	Role string `json:"role,omitempty"`

	Online    bool `json:"online,omitempty"`
	Invisible bool `json:"invisible,omitempty"`
	Banned    bool `json:"banned,omitempty"`

	// LastActive is the last time the backend saw the user connected.
	LastActive *time.Time `json:"last_active,omitempty"`

	// TotalUnreadCount is only populated on the connected user and holds the
	// number of unread messages across every channel.
	TotalUnreadCount int `json:"total_unread_count,omitempty"`

	// UnreadChannels is only populated on the connected user and holds the
	// number of channels with at least one unread message.
	UnreadChannels int `json:"unread_channels,omitempty"`

	// Mutes lists the users muted by the connected user.
	Mutes []Mute `json:"mutes,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// ExtraData carries application-defined custom fields.
	ExtraData map[string]any `json:"extra_data,omitempty"`
}

// IsMuted reports whether targetID is in the user's mute list.
func (u User) IsMuted(targetID string) bool {
	for _, m := range u.Mutes {
		if m.Target != nil && m.Target.ID == targetID {
			return true
		}
	}
	return false
}
