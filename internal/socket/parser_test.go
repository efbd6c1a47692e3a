package socket

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsParser_FirstConnection(t *testing.T) {
	p := newEventsParser()

	env, kind, err := p.parse([]byte(`{"me":{"id":"hello-user"}}`))
	require.NoError(t, err)
	assert.Equal(t, messageConnected, kind)
	require.NotNil(t, env.Me)
	assert.Equal(t, "hello-user", env.Me.ID)
}

func TestEventsParser_FirstInvalidEvent(t *testing.T) {
	p := newEventsParser()

	_, kind, err := p.parse([]byte(`{"type":"health.check"}`))
	require.NoError(t, err)
	assert.Equal(t, messageDropped, kind)
	assert.False(t, p.connected)
}

func TestEventsParser_MapsTypesAfterConnection(t *testing.T) {
	p := newEventsParser()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	_, kind, err := p.parse([]byte(`{"me":{"id":"hello"},"type":"health.check"}`))
	require.NoError(t, err)
	require.Equal(t, messageConnected, kind)

	types := []models.EventType{
		models.EventChannelTruncated,
		models.EventNotificationChannelTruncated,
		models.EventNotificationChannelDeleted,
	}
	for _, want := range types {
		env, kind, err := p.parse([]byte(`{"type":"` + string(want) + `"}`))
		require.NoError(t, err)
		assert.Equal(t, messageEvent, kind)
		assert.Equal(t, want, env.Type)
		assert.Equal(t, fixed, env.ReceivedAt)
	}
}

func TestEventsParser_Rejected(t *testing.T) {
	p := newEventsParser()

	env, kind, err := p.parse([]byte(`{"error":{"code":40,"message":"token expired","StatusCode":401}}`))
	require.NoError(t, err)
	assert.Equal(t, messageRejected, kind)
	require.NotNil(t, env.Error)
	assert.Equal(t, 40, env.Error.Code)
	assert.Equal(t, 401, env.Error.StatusCode)
}

func TestEventsParser_Malformed(t *testing.T) {
	p := newEventsParser()

	_, kind, err := p.parse([]byte(`{me:`))
	assert.Error(t, err)
	assert.Equal(t, messageDropped, kind)
}

func TestEventsParser_Counters(t *testing.T) {
	p := newEventsParser()
	p.connected = true

	env, _, err := p.parse([]byte(`{"type":"notification.mark_read","total_unread_count":0,"unread_channels":2}`))
	require.NoError(t, err)
	require.NotNil(t, env.TotalUnreadCount)
	require.NotNil(t, env.UnreadChannels)
	assert.Equal(t, 0, *env.TotalUnreadCount)
	assert.Equal(t, 2, *env.UnreadChannels)
}
