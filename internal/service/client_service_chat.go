// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/internal/store"
	"github.com/MKhiriev/go-chat-sdk/internal/validators"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/livedata"
	"github.com/MKhiriev/go-chat-sdk/models"
)

// unknownCount marks a counter that was never posted.
const unknownCount = -1

type chatService struct {
	api    adapter.ChatAPI
	socket socket.Socket
	users  store.UserRepository
	logger *logger.Logger
	now    func() time.Time

	validator validators.Validator

	onlineStatus   *livedata.Mutable[models.OnlineStatus]
	totalUnread    *livedata.Mutable[int]
	unreadChannels *livedata.Mutable[int]
	currentUser    *livedata.Mutable[*models.User]
	errs           *livedata.Mutable[error]

	observer *lifecycle.Observer
	armed    chan struct{}
	armOnce  sync.Once

	mu                 sync.Mutex
	baseCtx            context.Context
	user               *models.User // set while a session exists
	userWasInitialized bool
	lifecycleStopped   bool
	state              models.ClientState
	lastTotalUnread    int
	lastUnreadChannels int
	channels           map[string]*models.Channel
	markedAllReadAt    *time.Time
}

// NewChatService wires the state bridge. users may be nil, in which case
// the connected user is not cached locally.
func NewChatService(api adapter.ChatAPI, sock socket.Socket, users store.UserRepository, log *logger.Logger) ChatService {
	s := &chatService{
		api:    api,
		socket: sock,
		users:  users,
		logger: log.WithComponent("chat"),
		now:    time.Now,

		validator: validators.NewChatValidator(),

		onlineStatus:   livedata.New(models.OnlineStatusNotInitialized),
		totalUnread:    livedata.Empty[int](),
		unreadChannels: livedata.Empty[int](),
		currentUser:    livedata.Empty[*models.User](),
		errs:           livedata.Empty[error](),

		armed:              make(chan struct{}),
		baseCtx:            context.Background(),
		lastTotalUnread:    unknownCount,
		lastUnreadChannels: unknownCount,
		channels:           make(map[string]*models.Channel),
	}
	s.observer = lifecycle.NewObserver(s)
	return s
}

func (s *chatService) OnlineStatus() livedata.LiveData[models.OnlineStatus] {
	return s.onlineStatus
}

func (s *chatService) TotalUnreadMessages() livedata.LiveData[int] {
	return s.totalUnread
}

func (s *chatService) UnreadChannels() livedata.LiveData[int] {
	return s.unreadChannels
}

func (s *chatService) CurrentUser() livedata.LiveData[*models.User] {
	return s.currentUser
}

func (s *chatService) Errors() livedata.LiveData[error] {
	return s.errs
}

func (s *chatService) Lifecycle() *lifecycle.Observer {
	return s.observer
}

func (s *chatService) LifecycleArmed() <-chan struct{} {
	return s.armed
}

func (s *chatService) IsConnected() bool {
	return s.socket.IsConnected()
}

// State returns a copy of the merged server state.
func (s *chatService) State() models.ClientState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.ClientState{}
	if s.state.CurrentUser != nil {
		u := *s.state.CurrentUser
		st.CurrentUser = &u
	}
	if s.state.TotalUnreadCount != nil {
		st.TotalUnreadCount = intPtr(*s.state.TotalUnreadCount)
	}
	if s.state.UnreadChannels != nil {
		st.UnreadChannels = intPtr(*s.state.UnreadChannels)
	}
	return st
}

func (s *chatService) ConnectUser(ctx context.Context, user models.User, tokens TokenProvider) <-chan ConnectResult {
	result := make(chan ConnectResult, 1)
	go func() {
		defer close(result)
		u, err := s.Connect(ctx, user, tokens)
		result <- ConnectResult{User: u, Err: err}
	}()
	return result
}

func (s *chatService) Connect(ctx context.Context, user models.User, tokens TokenProvider) (models.User, error) {
	log := s.logger.GetChildLogger()

	if user.ID == "" {
		return models.User{}, ErrEmptyUserID
	}
	if err := s.validator.Validate(ctx, user, validators.FieldUserID); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}
	if tokens == nil {
		return models.User{}, ErrInvalidToken
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID != user.ID {
		current := s.user.ID
		s.mu.Unlock()
		return models.User{}, fmt.Errorf("%w: connected as %q", ErrUserAlreadySet, current)
	}
	pending := user
	s.user = &pending
	s.mu.Unlock()

	token, err := tokens.Token(ctx, user.ID)
	if err == nil {
		err = checkTokenUser(token, user.ID)
	}
	if err != nil {
		return models.User{}, s.connectFailed(user.ID, err)
	}

	s.onlineStatus.Post(models.OnlineStatusConnecting)
	s.api.SetToken(token)

	if err = s.socket.Connect(ctx, user, token); err != nil {
		return models.User{}, s.connectFailed(user.ID, mapSocketError(err))
	}

	s.mu.Lock()
	connected := user
	// the socket's "me" is richer than the requested user
	if s.state.CurrentUser != nil && s.state.CurrentUser.ID == user.ID {
		connected = *s.state.CurrentUser
	} else {
		s.state.CurrentUser = &connected
	}
	s.user = &connected
	s.userWasInitialized = true
	s.lifecycleStopped = false
	s.mu.Unlock()

	s.api.SetConnection(models.ConnectionData{User: connected, ConnectionID: s.socket.ConnectionID()})
	s.onlineStatus.Post(models.OnlineStatusConnected)
	s.postUser(connected)
	s.armOnce.Do(func() { close(s.armed) })

	if s.users != nil {
		if err := s.users.SaveUser(ctx, connected); err != nil {
			log.Warn().Err(err).Str("user_id", connected.ID).Msg("failed to cache connected user")
		}
	}

	log.Info().Str("user_id", connected.ID).Msg("user connected")
	return connected, nil
}

// connectFailed posts the failure and releases the pending session, unless
// the user had already been connected before.
func (s *chatService) connectFailed(userID string, err error) error {
	s.logger.Error().Err(err).Str("user_id", userID).Msg("connect user failed")

	s.mu.Lock()
	if !s.userWasInitialized {
		s.user = nil
	}
	s.mu.Unlock()

	s.onlineStatus.Post(models.OnlineStatusFailed)
	s.errs.Post(err)
	return err
}

func (s *chatService) DisconnectUser() {
	s.mu.Lock()
	s.user = nil
	s.userWasInitialized = false
	s.lifecycleStopped = false
	s.state = models.ClientState{}
	s.lastTotalUnread = 0
	s.lastUnreadChannels = 0
	s.channels = make(map[string]*models.Channel)
	s.markedAllReadAt = nil
	s.mu.Unlock()

	s.socket.Disconnect()
	s.api.SetConnection(models.ConnectionData{})
	s.api.SetToken("")

	s.onlineStatus.Post(models.OnlineStatusNotInitialized)
	s.totalUnread.Post(0)
	s.unreadChannels.Post(0)
	s.currentUser.Post(nil)

	s.logger.Info().Msg("user disconnected")
}

// Resume implements [lifecycle.Handler].
func (s *chatService) Resume() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if err := s.ResumeContext(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("reconnect on resume failed")
	}
}

func (s *chatService) ResumeContext(ctx context.Context) error {
	s.mu.Lock()
	if !s.lifecycleStopped || !s.userWasInitialized {
		s.mu.Unlock()
		return nil
	}
	s.lifecycleStopped = false
	s.mu.Unlock()

	s.logger.Debug().Msg("resuming socket connection")
	if err := s.socket.Reconnect(ctx); err != nil {
		err = mapSocketError(err)
		s.onlineStatus.Post(models.OnlineStatusFailed)
		s.errs.Post(err)
		return err
	}
	return nil
}

// Stopped implements [lifecycle.Handler].
func (s *chatService) Stopped() {
	s.mu.Lock()
	s.lifecycleStopped = true
	s.mu.Unlock()

	s.logger.Debug().Msg("stopping socket connection")
	s.socket.Disconnect()
}

func (s *chatService) Run(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	events := s.socket.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.HandleEvent(ev)
		}
	}
}

func (s *chatService) HandleEvent(ev models.Event) {
	switch ev.Type {
	case models.EventConnectionChanged:
		s.onConnectionChanged(ev)
	case models.EventConnectionRecovered:
		s.mu.Lock()
		active := len(s.channels)
		s.mu.Unlock()
		s.logger.Info().Int("active_channels", active).Msg("connection recovered")
		s.onlineStatus.Post(models.OnlineStatusConnected)
	case models.EventError:
		// connect and reconnect failures are posted by the caller, mapped
		if ev.Err != nil && !connectCallError(ev.Err) {
			s.errs.Post(mapSocketError(ev.Err))
		}
	}

	s.onAnyEvent(ev)
}

func (s *chatService) onConnectionChanged(ev models.Event) {
	s.mu.Lock()
	session := s.user != nil
	s.mu.Unlock()
	if !session {
		// leftovers of a signed out session
		return
	}

	if !ev.Online {
		s.onlineStatus.Post(models.OnlineStatusFailed)
		return
	}

	s.onlineStatus.Post(models.OnlineStatusConnecting)
	if s.socket.IsConnected() {
		s.api.SetConnection(models.ConnectionData{User: s.connectionUser(ev), ConnectionID: ev.ConnectionID})
		s.onlineStatus.Post(models.OnlineStatusConnected)
	}
}

func (s *chatService) connectionUser(ev models.Event) models.User {
	if ev.Me != nil {
		return *ev.Me
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return *s.user
	}
	return models.User{}
}

// onAnyEvent merges ev into the client state and posts the counters that
// changed since they were last posted.
func (s *chatService) onAnyEvent(ev models.Event) {
	total, channels := ev.TotalUnreadCount, ev.UnreadChannels
	if ev.Me != nil {
		if total == nil {
			total = intPtr(ev.Me.TotalUnreadCount)
		}
		if channels == nil {
			channels = intPtr(ev.Me.UnreadChannels)
		}
	}

	var (
		postTotal, postChannels bool
		me                      *models.User
	)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	if ev.Me != nil {
		u := *ev.Me
		s.state.CurrentUser = &u
		s.user = &u
		me = &u
	} else if ev.Type == models.EventUserUpdated && ev.User != nil && ev.User.ID == s.user.ID {
		u := *ev.User
		s.state.CurrentUser = &u
		s.user = &u
		me = &u
	}

	if total != nil && *total >= 0 {
		s.state.TotalUnreadCount = intPtr(*total)
	}
	if channels != nil && *channels >= 0 {
		s.state.UnreadChannels = intPtr(*channels)
	}
	// unread channels are only trusted once the total is known
	if known := s.state.TotalUnreadCount; known != nil {
		if *known != s.lastTotalUnread {
			s.lastTotalUnread = *known
			postTotal = true
		}
		if c := s.state.UnreadChannels; c != nil && *c != s.lastUnreadChannels {
			s.lastUnreadChannels = *c
			postChannels = true
		}
	}
	totalValue, channelsValue := s.lastTotalUnread, s.lastUnreadChannels

	s.trackChannelLocked(ev)
	s.mu.Unlock()

	if postTotal {
		s.totalUnread.Post(totalValue)
	}
	if postChannels {
		s.unreadChannels.Post(channelsValue)
	}
	if me != nil {
		s.postUser(*me)
	}
}

// trackChannelLocked updates per-channel unread counts of watched channels.
func (s *chatService) trackChannelLocked(ev models.Event) {
	if ev.CID == "" {
		return
	}
	ch, ok := s.channels[ev.CID]
	if !ok {
		return
	}

	switch ev.Type {
	case models.EventMessageNew, models.EventNotificationMessageNew:
		if ev.User == nil || s.user == nil || ev.User.ID != s.user.ID {
			ch.UnreadCount++
		}
	case models.EventNotificationMarkRead, models.EventChannelTruncated, models.EventNotificationChannelTruncated:
		ch.UnreadCount = 0
	case models.EventNotificationChannelDeleted:
		delete(s.channels, ev.CID)
	}
}

func (s *chatService) postUser(u models.User) {
	s.currentUser.Post(&u)
}

func (s *chatService) WatchChannel(cid string) error {
	channelType, channelID, err := models.ParseCID(cid)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChannel, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[cid]; !ok {
		s.channels[cid] = &models.Channel{CID: cid, Type: channelType, ID: channelID}
	}
	return nil
}

func (s *chatService) StopWatching(ctx context.Context, cid string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := mapAdapterError(s.api.StopWatching(ctx, cid)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.channels, cid)
	s.mu.Unlock()
	return nil
}

// ActiveChannels returns the watched channels ordered by cid.
func (s *chatService) ActiveChannels() []models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		out = append(out, *ch)
	}
	slices.SortFunc(out, func(a, b models.Channel) int {
		switch {
		case a.CID < b.CID:
			return -1
		case a.CID > b.CID:
			return 1
		}
		return 0
	})
	return out
}

func (s *chatService) ActiveChannelIDs() []string {
	channels := s.ActiveChannels()
	ids := make([]string, len(channels))
	for i, ch := range channels {
		ids[i] = ch.CID
	}
	return ids
}

func (s *chatService) MarkedAllReadAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markedAllReadAt == nil {
		return nil
	}
	t := *s.markedAllReadAt
	return &t
}

func (s *chatService) MuteUser(ctx context.Context, targetID string) (models.MuteUserResponse, error) {
	if err := s.requireSession(); err != nil {
		return models.MuteUserResponse{}, err
	}

	resp, err := s.api.MuteUser(ctx, targetID)
	if err != nil {
		return models.MuteUserResponse{}, mapAdapterError(err)
	}

	if resp.OwnUser != nil {
		u := *resp.OwnUser
		s.mu.Lock()
		s.state.CurrentUser = &u
		s.user = &u
		s.mu.Unlock()
		s.postUser(u)
	}
	return resp, nil
}

func (s *chatService) UnmuteUser(ctx context.Context, targetID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return mapAdapterError(s.api.UnmuteUser(ctx, targetID))
}

// MarkAllRead clears the unread counts of every watched channel, even when
// the backend call fails; the backend error is still returned.
func (s *chatService) MarkAllRead(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	err := s.api.MarkAllRead(ctx)

	now := s.now()
	s.mu.Lock()
	for _, ch := range s.channels {
		ch.UnreadCount = 0
	}
	if err == nil {
		s.markedAllReadAt = &now
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn().Err(err).Msg("mark all read failed on backend")
	}
	return mapAdapterError(err)
}

func (s *chatService) MarkRead(ctx context.Context, cid string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := mapAdapterError(s.api.MarkRead(ctx, cid, "")); err != nil {
		return err
	}

	s.mu.Lock()
	if ch, ok := s.channels[cid]; ok {
		ch.UnreadCount = 0
	}
	s.mu.Unlock()
	return nil
}

// QueryChannels forwards req; with req.Watch the returned channels become
// watched.
func (s *chatService) QueryChannels(ctx context.Context, req models.QueryChannelsRequest) ([]models.Channel, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	channels, err := s.api.QueryChannels(ctx, req)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	if req.Watch {
		s.mu.Lock()
		for _, ch := range channels {
			c := ch
			s.channels[c.CID] = &c
		}
		s.mu.Unlock()
	}
	return channels, nil
}

func (s *chatService) AddDevice(ctx context.Context, device models.Device) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if device.ID == "" {
		return ErrEmptyDeviceID
	}
	if err := s.validator.Validate(ctx, device, validators.FieldDeviceID, validators.FieldPushProvider); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDevice, err)
	}
	return mapAdapterError(s.api.AddDevice(ctx, device))
}

func (s *chatService) Devices(ctx context.Context) ([]models.Device, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	devices, err := s.api.GetDevices(ctx)
	return devices, mapAdapterError(err)
}

func (s *chatService) RemoveDevice(ctx context.Context, deviceID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return mapAdapterError(s.api.DeleteDevice(ctx, deviceID))
}

func (s *chatService) requireSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.userWasInitialized {
		return ErrNotConnected
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
