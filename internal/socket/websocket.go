package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/gorilla/websocket"
)

const (
	eventsBuffer   = 256
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

type wsSocket struct {
	baseURL        string
	apiKey         string
	timeout        time.Duration
	healthInterval time.Duration
	dialer         *websocket.Dialer
	ids            *utils.UUIDGenerator
	now            func() time.Time

	events chan models.Event

	// connectMu serialises Connect, Reconnect and Disconnect.
	connectMu sync.Mutex

	mu           sync.RWMutex
	conn         *websocket.Conn
	gen          uint64
	stop         context.CancelFunc
	user         *models.User
	token        string
	clientID     string
	connectionID string

	writeMu sync.Mutex

	logger *logger.Logger
}

// NewWebSocket builds a gorilla/websocket backed [Socket].
func NewWebSocket(adapterCfg config.ClientAdapter, appCfg config.ClientApp, workersCfg config.ClientWorkers, log *logger.Logger) (Socket, error) {
	baseURL, err := normalizeWSURL(adapterCfg.WSAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter ws address: %w", err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	health := workersCfg.HealthCheckInterval
	if health <= 0 {
		health = config.DefaultHealthCheckInterval
	}

	return &wsSocket{
		baseURL:        baseURL,
		apiKey:         appCfg.APIKey,
		timeout:        timeout,
		healthInterval: health,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
			Proxy:            websocket.DefaultDialer.Proxy,
		},
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		events: make(chan models.Event, eventsBuffer),
		logger: log.WithComponent("socket"),
	}, nil
}

func normalizeWSURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "wss://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("address must include host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (s *wsSocket) Events() <-chan models.Event {
	return s.events
}

func (s *wsSocket) ConnectionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectionID
}

func (s *wsSocket) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

func (s *wsSocket) Connect(ctx context.Context, user models.User, token string) error {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.closeCurrent(false)

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.clientID = s.ids.ClientID(user.ID)
	s.mu.Unlock()

	return s.dial(ctx, user, token)
}

func (s *wsSocket) Reconnect(ctx context.Context) error {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()
	if user == nil {
		return ErrNoUser
	}

	s.closeCurrent(false)
	return s.dial(ctx, *user, token)
}

func (s *wsSocket) Disconnect() {
	s.connectMu.Lock()
	defer s.connectMu.Unlock()

	s.closeCurrent(true)
}

// closeCurrent tears down the live connection. Local offline events are
// emitted only when a connection existed; explicit adds
// connection.disconnected.
func (s *wsSocket) closeCurrent(explicit bool) {
	s.mu.Lock()
	conn, stop := s.conn, s.stop
	s.conn, s.stop = nil, nil
	s.connectionID = ""
	s.gen++
	s.mu.Unlock()

	if conn == nil {
		return
	}

	stop()
	s.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	s.writeMu.Unlock()
	_ = conn.Close()

	s.logger.Info().Bool("explicit", explicit).Msg("socket disconnected")
	s.emit(offlineEvent())
	if explicit {
		s.emit(models.NewLocalEvent(models.EventDisconnected))
	}
}

func (s *wsSocket) dial(ctx context.Context, user models.User, token string) error {
	s.emit(models.NewLocalEvent(models.EventConnecting))

	endpoint, err := s.connectURL(user, token)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", ErrDial, err))
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, resp, err := s.dialer.DialContext(dialCtx, endpoint, nil)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%w: status %d: %w", ErrDial, resp.StatusCode, err)
		} else {
			err = fmt.Errorf("%w: %w", ErrDial, err)
		}
		return s.fail(err)
	}
	conn.SetReadLimit(maxMessageSize)

	parser := newEventsParser()
	parser.now = s.now
	me, connectionID, err := s.awaitConnected(dialCtx, conn, parser)
	if err != nil {
		_ = conn.Close()
		return s.fail(err)
	}

	loopCtx, stop := context.WithCancel(context.Background())

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.conn = conn
	s.stop = stop
	s.connectionID = connectionID
	s.user = &me
	s.mu.Unlock()

	go s.readLoop(conn, gen, parser)
	go s.healthLoop(loopCtx, conn)

	s.logger.Info().
		Str("user_id", me.ID).
		Str("connection_id", connectionID).
		Msg("socket connected")

	online := models.NewLocalEvent(models.EventConnectionChanged)
	online.Online = true
	online.ConnectionID = connectionID
	online.Me = &me
	online.TotalUnreadCount = intPtr(me.TotalUnreadCount)
	online.UnreadChannels = intPtr(me.UnreadChannels)
	s.emit(online)

	return nil
}

// awaitConnected reads until the first message carrying "me". Messages
// before it are dropped.
func (s *wsSocket) awaitConnected(ctx context.Context, conn *websocket.Conn, parser *eventsParser) (models.User, string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.timeout)
	}
	_ = conn.SetReadDeadline(deadline)
	defer conn.SetReadDeadline(time.Time{})

	// unblock ReadMessage if the caller gives up early
	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.User{}, "", fmt.Errorf("%w: %w", ErrHandshake, ctxErr)
			}
			return models.User{}, "", fmt.Errorf("%w: %w", ErrHandshake, err)
		}

		env, kind, err := parser.parse(data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dropping undecodable handshake message")
			continue
		}

		switch kind {
		case messageRejected:
			return models.User{}, "", errors.Join(ErrRejected, env.Error)
		case messageConnected:
			return *env.Me, env.ConnectionID, nil
		default:
			s.logger.Debug().Str("type", string(env.Type)).Msg("dropping message before connection")
		}
	}
}

// readLoop forwards the messages of an established connection. parser has
// already seen the handshake.
func (s *wsSocket) readLoop(conn *websocket.Conn, gen uint64, parser *eventsParser) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.connectionLost(gen, err)
			return
		}

		env, kind, err := parser.parse(data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dropping undecodable socket message")
			continue
		}
		if kind != messageEvent {
			continue
		}
		s.emit(env.Event)
	}
}

// connectionLost handles a read failure of connection gen. Failures of a
// connection that was already replaced or closed are ignored.
func (s *wsSocket) connectionLost(gen uint64, cause error) {
	s.mu.Lock()
	if s.gen != gen || s.conn == nil {
		s.mu.Unlock()
		return
	}
	conn, stop := s.conn, s.stop
	s.conn, s.stop = nil, nil
	s.connectionID = ""
	s.gen++
	s.mu.Unlock()

	stop()
	_ = conn.Close()

	if websocket.IsUnexpectedCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		s.logger.Warn().Err(cause).Msg("socket connection lost")
	} else {
		s.logger.Info().Err(cause).Msg("socket closed by backend")
	}

	errEvent := models.NewLocalEvent(models.EventError)
	errEvent.Err = cause
	s.emit(errEvent)
	s.emit(offlineEvent())
}

func (s *wsSocket) healthLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(s.healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			clientID := s.clientID
			s.mu.RUnlock()

			err := s.writeJSON(conn, map[string]string{
				"type":      string(models.EventHealthCheck),
				"client_id": clientID,
			})
			if err != nil {
				// the read loop reports the broken connection
				s.logger.Warn().Err(err).Msg("health check write failed")
				return
			}
		}
	}
}

func (s *wsSocket) writeJSON(conn *websocket.Conn, v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (s *wsSocket) connectURL(user models.User, token string) (string, error) {
	s.mu.RLock()
	clientID := s.clientID
	s.mu.RUnlock()

	payload, err := json.Marshal(connectPayload{
		UserID:                       user.ID,
		UserDetails:                  user,
		ClientID:                     clientID,
		ServerDeterminesConnectionID: true,
	})
	if err != nil {
		return "", fmt.Errorf("encode connect payload: %w", err)
	}

	q := url.Values{}
	q.Set("json", string(payload))
	q.Set("api_key", s.apiKey)
	q.Set("authorization", token)
	q.Set("stream-auth-type", "jwt")

	return s.baseURL + "/connect?" + q.Encode(), nil
}

type connectPayload struct {
	UserID                       string      `json:"user_id"`
	UserDetails                  models.User `json:"user_details"`
	ClientID                     string      `json:"client_id,omitempty"`
	ServerDeterminesConnectionID bool        `json:"server_determines_connection_id"`
}

// fail emits a connection.error event for err and returns it.
func (s *wsSocket) fail(err error) error {
	s.logger.Error().Err(err).Msg("socket connect failed")
	ev := models.NewLocalEvent(models.EventError)
	ev.Err = err
	s.emit(ev)
	return err
}

// emit forwards ev without blocking; a full buffer drops the event.
func (s *wsSocket) emit(ev models.Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warn().Str("type", string(ev.Type)).Msg("event buffer full, dropping event")
	}
}

func offlineEvent() models.Event {
	ev := models.NewLocalEvent(models.EventConnectionChanged)
	ev.Online = false
	return ev
}

func intPtr(v int) *int {
	return &v
}
