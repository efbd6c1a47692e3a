package tui

import (
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/models"
)

// Messages forwarded from the chat service holders.
type (
	onlineStatusMsg   models.OnlineStatus
	totalUnreadMsg    int
	unreadChannelsMsg int
	currentUserMsg    struct{ user *models.User }
	chatErrorMsg      struct{ err error }
)

// subscriptionClosedMsg ends a holder subscription.
type subscriptionClosedMsg struct{}

type markReadDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type lifecycleMsg struct {
	state      lifecycle.State
	dispatched bool
}

type clearStatusMsg struct{}
