package models

import "fmt"

// OnlineStatus describes the connection status exposed to the UI layer.
type OnlineStatus int

const (
	// OnlineStatusNotInitialized is the status before any user is connected.
	OnlineStatusNotInitialized OnlineStatus = iota
	// OnlineStatusConnecting is posted while the socket (re)establishes.
	OnlineStatusConnecting
	// OnlineStatusConnected is posted once the backend acknowledged the user.
	OnlineStatusConnected
	// OnlineStatusFailed is posted when connecting failed or the socket went
	// offline.
	OnlineStatusFailed
)

var onlineStatusNames = map[OnlineStatus]string{
	OnlineStatusNotInitialized: "not_initialized",
	OnlineStatusConnecting:     "connecting",
	OnlineStatusConnected:      "connected",
	OnlineStatusFailed:         "failed",
}

func (s OnlineStatus) String() string {
	if name, ok := onlineStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("online_status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler so that the status is
// rendered by name in JSON payloads.
func (s OnlineStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *OnlineStatus) UnmarshalText(text []byte) error {
	for status, name := range onlineStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown online status %q", string(text))
}
