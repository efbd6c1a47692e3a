// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter returns an adapter pointed at serverURL with a connection
// already set.
func newTestAdapter(t *testing.T, serverURL string) *httpChatAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.ClientApp{APIKey: "api-key"}

	a, err := NewHTTPChatAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)

	h := a.(*httpChatAdapter)
	h.SetToken("user-token")
	h.SetConnection(models.ConnectionData{User: models.User{ID: "jc"}, ConnectionID: "conn-1"})
	return h
}

// assertConnectionParams checks the query params and auth headers every
// request must carry.
func assertConnectionParams(t *testing.T, r *http.Request) {
	t.Helper()
	q := r.URL.Query()
	assert.Equal(t, "api-key", q.Get("api_key"))
	assert.Equal(t, "jc", q.Get("user_id"))
	assert.Equal(t, "conn-1", q.Get("connection_id"))
	assert.Equal(t, "user-token", r.Header.Get("Authorization"))
	assert.Equal(t, "jwt", r.Header.Get("stream-auth-type"))
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://chat.example.com/", want: "https://chat.example.com"},
		{in: "chat.example.com", want: "https://chat.example.com"},
		{in: "http://localhost:3030", want: "http://localhost:3030"},
		{in: "  ", wantErr: true},
		{in: "ws://chat.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPChatAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPChatAdapter(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	assert.Error(t, err)
}

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	a.SetToken("  abc \n")
	assert.Equal(t, "abc", a.Token())
}

// ── moderation ──────────────────────────────────────────────────────────────

func TestMuteUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/moderation/mute", r.URL.Path)
		assertConnectionParams(t, r)

		var body models.MuteUserRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tommaso", body.TargetID)
		assert.Equal(t, "jc", body.UserID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"mute": {"user": {"id": "jc"}, "target": {"id": "tommaso"}},
			"own_user": {"id": "jc", "mutes": [{"target": {"id": "tommaso"}}]}
		}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.MuteUser(context.Background(), "tommaso")

	require.NoError(t, err)
	require.NotNil(t, resp.Mute)
	assert.Equal(t, "tommaso", resp.Mute.Target.ID)
	require.NotNil(t, resp.OwnUser)
	assert.True(t, resp.OwnUser.IsMuted("tommaso"))
}

func TestMuteUser_Forbidden_DecodesChatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code": 17, "message": "user is not allowed to mute"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.MuteUser(context.Background(), "tommaso")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	var chatErr *models.ChatError
	require.True(t, errors.As(err, &chatErr))
	assert.Equal(t, 17, chatErr.Code)
	assert.Equal(t, http.StatusForbidden, chatErr.StatusCode)
	assert.Equal(t, "user is not allowed to mute", chatErr.Message)
}

func TestUnmuteUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/moderation/unmute", r.URL.Path)
		assertConnectionParams(t, r)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.UnmuteUser(context.Background(), "tommaso"))
}

// ── channels ────────────────────────────────────────────────────────────────

func TestMarkAllRead_Success(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/channels/read", r.URL.Path)
		assertConnectionParams(t, r)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.MarkAllRead(context.Background()))
	assert.True(t, called)
}

func TestMarkAllRead_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token expired"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.MarkAllRead(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")
}

func TestMarkRead_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels/messaging/general/read", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "msg-1", body["message_id"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.MarkRead(context.Background(), "messaging:general", "msg-1"))
}

func TestMarkRead_InvalidCID(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	err := a.MarkRead(context.Background(), "general", "")
	assert.ErrorIs(t, err, ErrInvalidCID)
}

func TestQueryChannels_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assertConnectionParams(t, r)

		var body models.QueryChannelsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 10, body.Limit)
		assert.True(t, body.Watch)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"channels": [
			{"channel": {"cid": "messaging:a", "type": "messaging", "id": "a"}},
			{"channel": {"type": "team", "id": "b"}}
		]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	channels, err := a.QueryChannels(context.Background(), models.QueryChannelsRequest{Limit: 10, Watch: true})

	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "messaging:a", channels[0].CID)
	assert.Equal(t, "team:b", channels[1].CID)
}

func TestQueryChannels_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.QueryChannels(context.Background(), models.QueryChannelsRequest{})

	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestStopWatching_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels/messaging/general/stop-watching", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.StopWatching(context.Background(), "messaging:general"))
}

// ── devices ─────────────────────────────────────────────────────────────────

func TestAddDevice_FillsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/devices", r.URL.Path)

		var body models.Device
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "device-token", body.ID)
		assert.Equal(t, "firebase", body.PushProvider)
		assert.Equal(t, "jc", body.UserID)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.AddDevice(context.Background(), models.Device{ID: "device-token", PushProvider: "firebase"})
	require.NoError(t, err)
}

func TestGetDevices_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assertConnectionParams(t, r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"devices": [{"id": "d1", "push_provider": "apn"}]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	devices, err := a.GetDevices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Device{{ID: "d1", PushProvider: "apn"}}, devices)
}

func TestDeleteDevice_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "d1", r.URL.Query().Get("id"))
		assertConnectionParams(t, r)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.DeleteDevice(context.Background(), "d1"))
}

func TestDeleteDevice_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.DeleteDevice(context.Background(), "d1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── transport ───────────────────────────────────────────────────────────────

func TestRequest_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAdapter(t, srv.URL)
	err := a.MarkAllRead(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
