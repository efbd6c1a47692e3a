package streamchat

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/mock"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type clientFixture struct {
	client   *Client
	api      *mock.MockChatAPI
	socket   *mock.MockSocket
	events   chan models.Event
	platform chan lifecycle.State
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &clientFixture{
		api:      mock.NewMockChatAPI(ctrl),
		socket:   mock.NewMockSocket(ctrl),
		events:   make(chan models.Event),
		platform: make(chan lifecycle.State),
	}
	f.socket.EXPECT().Events().Return((<-chan models.Event)(f.events)).AnyTimes()

	chat := service.NewChatService(f.api, f.socket, nil, logger.Nop())
	f.client = FromService(chat, ChannelPlatform(f.platform), logger.Nop())
	t.Cleanup(func() {
		f.socket.EXPECT().Disconnect().AnyTimes()
		f.api.EXPECT().SetConnection(models.ConnectionData{}).AnyTimes()
		f.api.EXPECT().SetToken("").AnyTimes()
		f.client.Close()
	})
	return f
}

func (f *clientFixture) connect(t *testing.T, user models.User) {
	t.Helper()
	token, err := utils.GenerateUserToken(user.ID, "secret", 0)
	require.NoError(t, err)

	f.api.EXPECT().SetToken(token)
	f.socket.EXPECT().Connect(gomock.Any(), user, token).Return(nil)
	f.socket.EXPECT().ConnectionID().Return("conn-1")
	f.api.EXPECT().SetConnection(models.ConnectionData{User: user, ConnectionID: "conn-1"})

	res := <-f.client.ConnectUser(context.Background(), user, token)
	require.NoError(t, res.Err)
}

func (f *clientFixture) send(t *testing.T, s lifecycle.State) {
	t.Helper()
	select {
	case f.platform <- s:
	case <-time.After(time.Second):
		t.Fatalf("lifecycle observer did not take %s", s)
	}
}

func waitCalled(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("%s was not called", what)
	}
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	c, err := NewClient(Options{}, nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, c)
}

func TestNewClient_InvalidAddress(t *testing.T) {
	_, err := NewClient(Options{APIKey: "key", HTTPAddress: "://bad"}, nil)
	require.Error(t, err)
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{APIKey: "key", RequestTimeout: time.Second}.withDefaults()

	assert.Equal(t, "key", o.APIKey)
	assert.Equal(t, time.Second, o.RequestTimeout)
	assert.NotEmpty(t, o.HTTPAddress)
	assert.NotEmpty(t, o.WSAddress)
	assert.Positive(t, o.HealthCheckInterval)
}

func TestClient_ConnectUser(t *testing.T) {
	f := newClientFixture(t)

	status, ok := f.client.OnlineStatus().Value()
	require.True(t, ok)
	assert.Equal(t, models.OnlineStatusNotInitialized, status)

	f.connect(t, models.User{ID: "jc", Name: "Jon"})

	status, _ = f.client.OnlineStatus().Value()
	assert.Equal(t, models.OnlineStatusConnected, status)
	user, ok := f.client.CurrentUser().Value()
	require.True(t, ok)
	require.NotNil(t, user)
	assert.Equal(t, "Jon", user.Name)
}

func TestClient_ConnectUser_EmptyToken(t *testing.T) {
	f := newClientFixture(t)

	res := <-f.client.ConnectUser(context.Background(), models.User{ID: "jc"}, "")
	require.ErrorIs(t, res.Err, service.ErrInvalidToken)

	status, _ := f.client.OnlineStatus().Value()
	assert.Equal(t, models.OnlineStatusFailed, status)
}

func TestClient_ConnectDevUser_NoSecret(t *testing.T) {
	f := newClientFixture(t)

	res := <-f.client.ConnectDevUser(context.Background(), models.User{ID: "jc"})
	require.ErrorIs(t, res.Err, service.ErrNoTokenSecret)
}

func TestClient_ForwardsSocketEvents(t *testing.T) {
	f := newClientFixture(t)
	f.connect(t, models.User{ID: "jc"})

	total, channels := 4, 2
	f.events <- models.Event{Type: models.EventNotificationMarkRead, TotalUnreadCount: &total, UnreadChannels: &channels}

	assert.Eventually(t, func() bool {
		v, _ := f.client.TotalUnreadMessages().Value()
		return v == 4
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		v, _ := f.client.UnreadChannels().Value()
		return v == 2
	}, time.Second, 10*time.Millisecond)
}

func TestClient_LifecycleAfterConnect(t *testing.T) {
	f := newClientFixture(t)
	f.connect(t, models.User{ID: "jc"})

	disconnected := make(chan struct{})
	f.socket.EXPECT().Disconnect().Do(func() { close(disconnected) })
	f.send(t, lifecycle.Background)
	waitCalled(t, disconnected, "Disconnect")

	reconnected := make(chan struct{})
	f.socket.EXPECT().Reconnect(gomock.Any()).DoAndReturn(func(context.Context) error {
		close(reconnected)
		return nil
	})
	f.send(t, lifecycle.Foreground)
	waitCalled(t, reconnected, "Reconnect")
}

func TestClient_LifecycleIgnoredBeforeConnect(t *testing.T) {
	f := newClientFixture(t)

	select {
	case f.platform <- lifecycle.Background:
		t.Fatal("lifecycle observer must not be registered before the first connect")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClient_ResumeWithoutStop(t *testing.T) {
	f := newClientFixture(t)
	f.connect(t, models.User{ID: "jc"})

	// not stopped, nothing to reconnect
	require.NoError(t, f.client.Resume(context.Background()))
}

func TestClient_StopResume(t *testing.T) {
	f := newClientFixture(t)
	f.connect(t, models.User{ID: "jc"})

	f.socket.EXPECT().Disconnect()
	f.client.Stop()

	f.socket.EXPECT().Reconnect(gomock.Any()).Return(nil)
	require.NoError(t, f.client.Resume(context.Background()))
}

func TestClient_IsConnected(t *testing.T) {
	f := newClientFixture(t)

	f.socket.EXPECT().IsConnected().Return(true)
	assert.True(t, f.client.IsConnected())
}

func TestClient_DisconnectUser(t *testing.T) {
	f := newClientFixture(t)
	f.connect(t, models.User{ID: "jc"})

	f.socket.EXPECT().Disconnect()
	f.api.EXPECT().SetConnection(models.ConnectionData{})
	f.api.EXPECT().SetToken("")
	f.client.DisconnectUser()

	status, _ := f.client.OnlineStatus().Value()
	assert.Equal(t, models.OnlineStatusNotInitialized, status)
	user, ok := f.client.CurrentUser().Value()
	require.True(t, ok)
	assert.Nil(t, user)
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	f := newClientFixture(t)

	f.socket.EXPECT().Disconnect()
	f.api.EXPECT().SetConnection(models.ConnectionData{})
	f.api.EXPECT().SetToken("")
	f.client.Close()
	f.client.Close()
}
