// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streamchat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/livedata"
	"github.com/MKhiriev/go-chat-sdk/models"
)

// ErrMissingAPIKey is returned by [NewClient] without an API key.
var ErrMissingAPIKey = errors.New("api key is required")

// ConnectResult is delivered once per connect attempt.
type ConnectResult = service.ConnectResult

// Client is a chat session bound to one platform.
type Client struct {
	chat      service.ChatService
	platform  Platform
	apiSecret string
	logger    *logger.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewClient builds a client talking to the backend described by opts.
// platform may be nil; lifecycle transitions must then be reported through
// Resume and Stop.
func NewClient(opts Options, platform Platform) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = opts.withDefaults()

	log := logger.Nop()
	if opts.LogFile != "" {
		log = logger.NewClientLogger("streamchat", opts.LogFile)
		if err := log.SetLevel(opts.LogLevel); err != nil {
			return nil, err
		}
	}

	api, err := adapter.NewHTTPChatAdapter(opts.adapterConfig(), opts.appConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("create chat api: %w", err)
	}
	sock, err := socket.NewWebSocket(opts.adapterConfig(), opts.appConfig(), opts.workersConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("create socket: %w", err)
	}

	c := FromService(service.NewChatService(api, sock, nil, log), platform, log)
	c.apiSecret = opts.APISecret
	return c, nil
}

// FromService wraps an already wired chat service and starts pumping its
// events.
func FromService(chat service.ChatService, platform Platform, log *logger.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		chat:     chat,
		platform: platform,
		logger:   log,
		cancel:   cancel,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := chat.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event loop stopped")
		}
	}()

	if platform != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.watchLifecycle(ctx)
		}()
	}
	return c
}

// watchLifecycle registers the lifecycle observer after the first
// successful connect.
func (c *Client) watchLifecycle(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-c.chat.LifecycleArmed():
	}

	c.logger.Debug().Msg("lifecycle observer registered")
	_ = c.chat.Lifecycle().Watch(ctx, c.platform.Lifecycle(ctx))
}

// Chat returns the underlying service for in-module hosts.
func (c *Client) Chat() service.ChatService {
	return c.chat
}

func (c *Client) OnlineStatus() livedata.LiveData[models.OnlineStatus] {
	return c.chat.OnlineStatus()
}

func (c *Client) TotalUnreadMessages() livedata.LiveData[int] {
	return c.chat.TotalUnreadMessages()
}

func (c *Client) UnreadChannels() livedata.LiveData[int] {
	return c.chat.UnreadChannels()
}

func (c *Client) CurrentUser() livedata.LiveData[*models.User] {
	return c.chat.CurrentUser()
}

func (c *Client) Errors() livedata.LiveData[error] {
	return c.chat.Errors()
}

func (c *Client) IsConnected() bool {
	return c.chat.IsConnected()
}

// ConnectUser connects user with a token issued by the app backend.
func (c *Client) ConnectUser(ctx context.Context, user models.User, token string) <-chan ConnectResult {
	return c.chat.ConnectUser(ctx, user, service.NewStaticTokenProvider(token))
}

// ConnectDevUser connects user with a token signed by Options.APISecret.
func (c *Client) ConnectDevUser(ctx context.Context, user models.User) <-chan ConnectResult {
	return c.chat.ConnectUser(ctx, user, service.NewDevTokenProvider(c.apiSecret, 0))
}

// Connect is the blocking form of ConnectUser.
func (c *Client) Connect(ctx context.Context, user models.User, token string) (models.User, error) {
	return c.chat.Connect(ctx, user, service.NewStaticTokenProvider(token))
}

// DisconnectUser signs the current user out.
func (c *Client) DisconnectUser() {
	c.chat.DisconnectUser()
}

// Resume reconnects the socket after Stop. It is a no-op before the first
// successful connect.
func (c *Client) Resume(ctx context.Context) error {
	return c.chat.ResumeContext(ctx)
}

// Stop pauses the socket until Resume.
func (c *Client) Stop() {
	c.chat.Stopped()
}

func (c *Client) WatchChannel(cid string) error {
	return c.chat.WatchChannel(cid)
}

func (c *Client) StopWatching(ctx context.Context, cid string) error {
	return c.chat.StopWatching(ctx, cid)
}

func (c *Client) ActiveChannels() []models.Channel {
	return c.chat.ActiveChannels()
}

func (c *Client) MuteUser(ctx context.Context, targetID string) (models.MuteUserResponse, error) {
	return c.chat.MuteUser(ctx, targetID)
}

func (c *Client) UnmuteUser(ctx context.Context, targetID string) error {
	return c.chat.UnmuteUser(ctx, targetID)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.chat.MarkAllRead(ctx)
}

func (c *Client) MarkRead(ctx context.Context, cid string) error {
	return c.chat.MarkRead(ctx, cid)
}

func (c *Client) QueryChannels(ctx context.Context, req models.QueryChannelsRequest) ([]models.Channel, error) {
	return c.chat.QueryChannels(ctx, req)
}

func (c *Client) AddDevice(ctx context.Context, device models.Device) error {
	return c.chat.AddDevice(ctx, device)
}

// Close signs the user out and stops the background goroutines. The client
// is unusable afterwards.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.chat.DisconnectUser()

		done := make(chan struct{})
		go func() {
			c.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			c.logger.Warn().Msg("background goroutines did not stop in time")
		}
	})
}
