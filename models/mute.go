package models

import "time"

// Mute records that User muted Target.
type Mute struct {
	User      *User      `json:"user,omitempty"`
	Target    *User      `json:"target,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// MuteUserResponse is returned by the mute endpoint. OwnUser is the
// refreshed connected user, including the updated mute list.
type MuteUserResponse struct {
	Mute    *Mute `json:"mute"`
	OwnUser *User `json:"own_user"`
}

// MuteUserRequest is the body sent to the mute and unmute endpoints.
type MuteUserRequest struct {
	TargetID string `json:"target_id"`
	UserID   string `json:"user_id,omitempty"`
}
