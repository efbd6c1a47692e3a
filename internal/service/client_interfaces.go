package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/livedata"
	"github.com/MKhiriev/go-chat-sdk/models"
)

// ConnectResult is delivered once per ConnectUser call.
type ConnectResult struct {
	User models.User
	Err  error
}

// ChatService bridges the socket and REST layers to observable state.
type ChatService interface {
	lifecycle.Handler

	OnlineStatus() livedata.LiveData[models.OnlineStatus]
	TotalUnreadMessages() livedata.LiveData[int]
	UnreadChannels() livedata.LiveData[int]
	// CurrentUser holds nil after sign-out.
	CurrentUser() livedata.LiveData[*models.User]
	Errors() livedata.LiveData[error]

	IsConnected() bool
	State() models.ClientState

	// ConnectUser connects user in the background. The returned channel
	// receives exactly one result and is then closed.
	ConnectUser(ctx context.Context, user models.User, tokens TokenProvider) <-chan ConnectResult
	// Connect is the blocking form of ConnectUser.
	Connect(ctx context.Context, user models.User, tokens TokenProvider) (models.User, error)
	// DisconnectUser signs the current user out.
	DisconnectUser()

	// ResumeContext reconnects after Stopped, if a user was connected.
	ResumeContext(ctx context.Context) error

	// HandleEvent applies one socket event to the observable state.
	HandleEvent(ev models.Event)
	// Run pumps socket events into HandleEvent until ctx is done.
	Run(ctx context.Context) error

	// Lifecycle returns the observer dispatching platform transitions to
	// this service.
	Lifecycle() *lifecycle.Observer
	// LifecycleArmed is closed after the first successful connect.
	LifecycleArmed() <-chan struct{}

	WatchChannel(cid string) error
	StopWatching(ctx context.Context, cid string) error
	ActiveChannels() []models.Channel
	ActiveChannelIDs() []string
	MarkedAllReadAt() *time.Time

	MuteUser(ctx context.Context, targetID string) (models.MuteUserResponse, error)
	UnmuteUser(ctx context.Context, targetID string) error
	MarkAllRead(ctx context.Context) error
	MarkRead(ctx context.Context, cid string) error
	QueryChannels(ctx context.Context, req models.QueryChannelsRequest) ([]models.Channel, error)
	AddDevice(ctx context.Context, device models.Device) error
	Devices(ctx context.Context) ([]models.Device, error)
	RemoveDevice(ctx context.Context, deviceID string) error
}

// TokenProvider returns the JWT used to connect userID.
type TokenProvider interface {
	Token(ctx context.Context, userID string) (string, error)
}

// ClientSyncJob periodically persists the sync state of the connected user.
type ClientSyncJob interface {
	// Start launches the background goroutine, syncing every interval.
	// Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()

	// SyncOnce persists the current state. Without a connected user it is a
	// no-op.
	SyncOnce(ctx context.Context) error

	// Restore re-watches the channels persisted for userID.
	Restore(ctx context.Context, userID string) error
}

// AppInfoService reports the running SDK version.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	BuildInfo() models.AppBuildInfo
}
