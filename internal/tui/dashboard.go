package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const statusLineTTL = 2 * time.Second

// subscriptions are the holder channels the dashboard listens on.
type subscriptions struct {
	status   <-chan models.OnlineStatus
	total    <-chan int
	channels <-chan int
	user     <-chan *models.User
	errs     <-chan error
}

type dashboardModel struct {
	ctx   context.Context
	chat  service.ChatService
	build models.AppBuildInfo
	subs  subscriptions

	copyToClipboard func(string) error

	spinner spinner.Model

	status         models.OnlineStatus
	totalUnread    int
	unreadChannels int
	user           *models.User
	lifecycle      lifecycle.State

	statusLine    string
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool
	quitByUser    bool
}

func newDashboardModel(ctx context.Context, chat service.ChatService, build models.AppBuildInfo) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = pendingStyle

	return dashboardModel{
		ctx:   ctx,
		chat:  chat,
		build: build,
		subs: subscriptions{
			status:   chat.OnlineStatus().Subscribe(ctx),
			total:    chat.TotalUnreadMessages().Subscribe(ctx),
			channels: chat.UnreadChannels().Subscribe(ctx),
			user:     chat.CurrentUser().Subscribe(ctx),
			errs:     chat.Errors().Subscribe(ctx),
		},
		copyToClipboard: clipboard.WriteAll,
		spinner:         s,
		lifecycle:       lifecycle.Foreground,
	}
}

// listen turns the next value of ch into a message. Each handled message
// re-arms its own listener.
func listen[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return wrap(v)
	}
}

func (m dashboardModel) listenStatus() tea.Cmd {
	return listen(m.subs.status, func(v models.OnlineStatus) tea.Msg { return onlineStatusMsg(v) })
}

func (m dashboardModel) listenTotal() tea.Cmd {
	return listen(m.subs.total, func(v int) tea.Msg { return totalUnreadMsg(v) })
}

func (m dashboardModel) listenChannels() tea.Cmd {
	return listen(m.subs.channels, func(v int) tea.Msg { return unreadChannelsMsg(v) })
}

func (m dashboardModel) listenUser() tea.Cmd {
	return listen(m.subs.user, func(v *models.User) tea.Msg { return currentUserMsg{user: v} })
}

func (m dashboardModel) listenErrors() tea.Cmd {
	return listen(m.subs.errs, func(v error) tea.Msg { return chatErrorMsg{err: v} })
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.listenStatus(),
		m.listenTotal(),
		m.listenChannels(),
		m.listenUser(),
		m.listenErrors(),
	)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case onlineStatusMsg:
		m.status = models.OnlineStatus(msg)
		return m, m.listenStatus()
	case totalUnreadMsg:
		m.totalUnread = int(msg)
		return m, m.listenTotal()
	case unreadChannelsMsg:
		m.unreadChannels = int(msg)
		return m, m.listenChannels()
	case currentUserMsg:
		m.user = msg.user
		return m, m.listenUser()
	case chatErrorMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
		}
		return m, m.listenErrors()
	case subscriptionClosedMsg:
		return m, nil

	case lifecycleMsg:
		m.lifecycle = msg.state
		if msg.dispatched {
			cmd := m.flash("app moved to " + msg.state.String())
			return m, cmd
		}
		cmd := m.flash("already in " + msg.state.String())
		return m, cmd
	case markReadDoneMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		cmd := m.flash("all channels marked read")
		return m, cmd
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf(fmt.Sprintf("copy to clipboard: %v", msg.err))
			return m, nil
		}
		cmd := m.flash("user id copied")
		return m, cmd
	case clearStatusMsg:
		m.statusLine = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) && msg.String() == "ctrl+c" {
		m.quitByUser = true
		return m, tea.Quit
	}

	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}
	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(msg, keys.version):
		m.showBuildInfo = true
	case key.Matches(msg, keys.background):
		return m, m.cmdDispatch(lifecycle.Background)
	case key.Matches(msg, keys.foreground):
		return m, m.cmdDispatch(lifecycle.Foreground)
	case key.Matches(msg, keys.markRead):
		return m, m.cmdMarkAllRead()
	case key.Matches(msg, keys.copyUser):
		if m.user == nil {
			cmd := m.flash("no user connected")
			return m, cmd
		}
		return m, m.cmdCopy(m.user.ID)
	}
	return m, nil
}

func (m dashboardModel) cmdDispatch(state lifecycle.State) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.chat.LifecycleArmed():
		default:
			return chatErrorMsg{err: service.ErrNotConnected}
		}
		return lifecycleMsg{state: state, dispatched: m.chat.Lifecycle().Dispatch(state)}
	}
}

func (m dashboardModel) cmdMarkAllRead() tea.Cmd {
	return func() tea.Msg {
		return markReadDoneMsg{err: m.chat.MarkAllRead(m.ctx)}
	}
}

func (m dashboardModel) cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: m.copyToClipboard(text)}
	}
}

func (m *dashboardModel) flash(line string) tea.Cmd {
	m.statusLine = line
	return tea.Tick(statusLineTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *dashboardModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m dashboardModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.build))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status:          %s\n", m.renderStatus())
	fmt.Fprintf(&b, "User:            %s\n", m.renderUser())
	fmt.Fprintf(&b, "Unread messages: %d\n", m.totalUnread)
	fmt.Fprintf(&b, "Unread channels: %d\n", m.unreadChannels)
	fmt.Fprintf(&b, "App state:       %s", m.lifecycle)
	if m.statusLine != "" {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.statusLine))
	}

	body := renderPage("CHAT", b.String(), keys.helpLine())
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}
	return appStyle.Render(body)
}

func (m dashboardModel) renderStatus() string {
	switch m.status {
	case models.OnlineStatusConnecting:
		return m.spinner.View() + " " + pendingStyle.Render(m.status.String())
	case models.OnlineStatusConnected:
		return connectedStyle.Render(m.status.String())
	case models.OnlineStatusFailed:
		return failedStyle.Render(m.status.String())
	default:
		return helpStyle.Render(m.status.String())
	}
}

func (m dashboardModel) renderUser() string {
	if m.user == nil {
		return "-"
	}
	if m.user.Name == "" {
		return fitText(m.user.ID, 40)
	}
	return fitText(fmt.Sprintf("%s (%s)", m.user.Name, m.user.ID), 40)
}
