package models

// Device is a push notification target registered for the connected user.
type Device struct {
	ID           string `json:"id"`
	PushProvider string `json:"push_provider"`
	UserID       string `json:"user_id,omitempty"`
}

// DevicesResponse wraps the list endpoint payload.
type DevicesResponse struct {
	Devices []Device `json:"devices"`
}
