package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/mock"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatService_FailedConnect_PostsErrorOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockChatAPI(ctrl)
	api.EXPECT().SetToken(gomock.Any()).AnyTimes()

	sock, err := socket.NewWebSocket(
		config.ClientAdapter{WSAddress: "ws://127.0.0.1:1", RequestTimeout: time.Second},
		config.ClientApp{APIKey: "key"},
		config.ClientWorkers{HealthCheckInterval: time.Second},
		logger.Nop(),
	)
	require.NoError(t, err)

	svc := NewChatService(api, sock, nil, logger.Nop())
	posted := record(t, svc.Errors())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	_, err = svc.Connect(ctx, models.User{ID: "jc"}, NewDevTokenProvider(testSecret, 0))
	require.ErrorIs(t, err, ErrConnectionFailed)

	// Run drains the connecting and connection.error events
	require.Eventually(t, func() bool { return len(sock.Events()) == 0 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(posted()) > 1 }, 200*time.Millisecond, 10*time.Millisecond)

	require.Len(t, posted(), 1)
	current, ok := svc.Errors().Value()
	require.True(t, ok)
	assert.ErrorIs(t, current, ErrConnectionFailed)
}

func TestChatService_HandleEvent_ErrorEventMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantPost bool
	}{
		{
			name: "dial failure reported by connect",
			err:  fmt.Errorf("%w: connection refused", socket.ErrDial),
		},
		{
			name: "handshake failure reported by reconnect",
			err:  fmt.Errorf("%w: timeout", socket.ErrHandshake),
		},
		{
			name: "rejected handshake",
			err:  errors.Join(socket.ErrRejected, &models.ChatError{Code: 40}),
		},
		{
			name:     "read loop failure",
			err:      errors.New("read: connection reset"),
			wantPost: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t)

			f.svc.HandleEvent(models.Event{Type: models.EventError, Err: tt.err})

			posted, ok := f.svc.Errors().Value()
			require.Equal(t, tt.wantPost, ok)
			if tt.wantPost {
				assert.ErrorIs(t, posted, tt.err)
			}
		})
	}
}
