package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/mock"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type dashboardFixture struct {
	model  dashboardModel
	chat   service.ChatService
	api    *mock.MockChatAPI
	socket *mock.MockSocket
	copied []string
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f := &dashboardFixture{
		api:    mock.NewMockChatAPI(ctrl),
		socket: mock.NewMockSocket(ctrl),
	}
	f.chat = service.NewChatService(f.api, f.socket, nil, logger.Nop())
	f.model = newDashboardModel(ctx, f.chat, models.NewAppBuildInfo("1.0.0", "2026-03-01", "deadbeef"))
	f.model.copyToClipboard = func(s string) error {
		f.copied = append(f.copied, s)
		return nil
	}
	return f
}

func (f *dashboardFixture) connect(t *testing.T, user models.User) {
	t.Helper()
	token, err := utils.GenerateUserToken(user.ID, "secret", 0)
	require.NoError(t, err)

	f.api.EXPECT().SetToken(token)
	f.socket.EXPECT().Connect(gomock.Any(), user, token).Return(nil)
	f.socket.EXPECT().ConnectionID().Return("conn-1")
	f.api.EXPECT().SetConnection(gomock.Any())

	_, err = f.chat.Connect(context.Background(), user, service.NewStaticTokenProvider(token))
	require.NoError(t, err)
}

// update feeds msg and returns the new model and command.
func (f *dashboardFixture) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	m, ok := next.(dashboardModel)
	require.True(t, ok)
	f.model = m
	return cmd
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestDashboard_ListenDeliversCurrentValue(t *testing.T) {
	f := newDashboardFixture(t)

	msg := f.model.listenStatus()()
	assert.Equal(t, onlineStatusMsg(models.OnlineStatusNotInitialized), msg)
}

func TestDashboard_HolderMessages(t *testing.T) {
	f := newDashboardFixture(t)

	require.NotNil(t, f.update(t, onlineStatusMsg(models.OnlineStatusConnected)))
	require.NotNil(t, f.update(t, totalUnreadMsg(5)))
	require.NotNil(t, f.update(t, unreadChannelsMsg(2)))
	require.NotNil(t, f.update(t, currentUserMsg{user: &models.User{ID: "jc", Name: "Jon"}}))

	assert.Equal(t, models.OnlineStatusConnected, f.model.status)
	assert.Equal(t, 5, f.model.totalUnread)
	assert.Equal(t, 2, f.model.unreadChannels)

	view := f.model.View()
	assert.Contains(t, view, "connected")
	assert.Contains(t, view, "Jon (jc)")
	assert.Contains(t, view, "Unread messages: 5")
	assert.Contains(t, view, "Unread channels: 2")
}

func TestDashboard_SubscriptionClosed(t *testing.T) {
	f := newDashboardFixture(t)
	assert.Nil(t, f.update(t, subscriptionClosedMsg{}))
}

func TestDashboard_ChatErrorShowsOverlay(t *testing.T) {
	f := newDashboardFixture(t)

	f.update(t, chatErrorMsg{err: service.ErrTokenExpiredOrInvalid})
	require.True(t, f.model.showError)
	assert.Contains(t, f.model.View(), "Token is expired or invalid")

	// other keys are swallowed while the overlay is shown
	assert.Nil(t, f.update(t, runeKey("r")))
	assert.True(t, f.model.showError)

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.showError)
}

func TestDashboard_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runeKey("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture(t)

			cmd := f.update(t, tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.True(t, f.model.quitByUser)
		})
	}
}

func TestDashboard_LifecycleBeforeConnect(t *testing.T) {
	f := newDashboardFixture(t)

	cmd := f.update(t, runeKey("b"))
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(chatErrorMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.err, service.ErrNotConnected)
}

func TestDashboard_LifecycleKeys(t *testing.T) {
	f := newDashboardFixture(t)
	f.connect(t, models.User{ID: "jc"})

	f.socket.EXPECT().Disconnect()
	msg := f.update(t, runeKey("b"))()
	assert.Equal(t, lifecycleMsg{state: lifecycle.Background, dispatched: true}, msg)

	f.update(t, msg)
	assert.Equal(t, lifecycle.Background, f.model.lifecycle)
	assert.Equal(t, "app moved to background", f.model.statusLine)

	f.socket.EXPECT().Reconnect(gomock.Any()).Return(nil)
	msg = f.update(t, runeKey("f"))()
	assert.Equal(t, lifecycleMsg{state: lifecycle.Foreground, dispatched: true}, msg)

	f.update(t, clearStatusMsg{})
	assert.Empty(t, f.model.statusLine)
}

func TestDashboard_MarkAllRead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newDashboardFixture(t)
		f.connect(t, models.User{ID: "jc"})
		f.api.EXPECT().MarkAllRead(gomock.Any()).Return(nil)

		msg := f.update(t, runeKey("r"))()
		assert.Equal(t, markReadDoneMsg{}, msg)

		f.update(t, msg)
		assert.Equal(t, "all channels marked read", f.model.statusLine)
	})

	t.Run("backend error", func(t *testing.T) {
		f := newDashboardFixture(t)
		f.connect(t, models.User{ID: "jc"})
		f.api.EXPECT().MarkAllRead(gomock.Any()).Return(adapter.ErrTooManyRequests)

		msg := f.update(t, runeKey("r"))()
		f.update(t, msg)
		assert.True(t, f.model.showError)
		assert.Equal(t, "Too many requests, try again later", f.model.errorOverlay.message)
	})
}

func TestDashboard_CopyUserID(t *testing.T) {
	f := newDashboardFixture(t)

	f.update(t, runeKey("c"))
	assert.Equal(t, "no user connected", f.model.statusLine)
	assert.Empty(t, f.copied)

	f.update(t, currentUserMsg{user: &models.User{ID: "jc"}})
	msg := f.update(t, runeKey("c"))()
	assert.Equal(t, copiedMsg{}, msg)
	assert.Equal(t, []string{"jc"}, f.copied)

	f.update(t, copiedMsg{err: errors.New("no clipboard")})
	assert.Contains(t, f.model.errorOverlay.message, "no clipboard")
}

func TestDashboard_BuildInfo(t *testing.T) {
	f := newDashboardFixture(t)

	f.update(t, runeKey("v"))
	view := f.model.View()
	assert.Contains(t, view, "Version: 1.0.0")
	assert.Contains(t, view, "Commit: deadbeef")

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.showBuildInfo)
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not connected", err: service.ErrNotConnected, want: "No user is connected"},
		{name: "network", err: errors.New("dial tcp 1.2.3.4:443: connection refused"), want: "Network is down or the chat backend is unreachable"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdef", 2))
}
