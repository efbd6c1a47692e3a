package models

// ClientState is the snapshot of server-pushed state kept by the client.
// Nil counters mean the backend has not reported them yet.
type ClientState struct {
	CurrentUser      *User
	TotalUnreadCount *int
	UnreadChannels   *int
}

// ConnectionData identifies an established socket connection.
type ConnectionData struct {
	User         User
	ConnectionID string
}
