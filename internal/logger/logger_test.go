package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	return entry
}

func TestNew_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("chat-client", &buf)

	l.Info().Str("cid", "messaging:general").Msg("watching")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "chat-client", entry["role"])
	assert.Equal(t, "messaging:general", entry["cid"])
	assert.Equal(t, "watching", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	parent := New("chat-client", &buf)

	t.Run("GetChildLogger", func(t *testing.T) {
		buf.Reset()
		child := parent.GetChildLogger()
		require.NotSame(t, parent, child)

		child.Info().Msg("child")
		assert.Equal(t, "chat-client", decodeEntry(t, buf.Bytes())["role"])
	})

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		parent.WithComponent("socket").Info().Msg("dial")

		entry := decodeEntry(t, buf.Bytes())
		assert.Equal(t, "socket", entry["component"])
		assert.Equal(t, "chat-client", entry["role"])
	})
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")
	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])

	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", path)

	l.Info().Str("user_id", "jc").Msg("connected")
	l.Info().Msg("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	entry := decodeEntry(t, lines[0])
	assert.Equal(t, "client", entry["role"])
	assert.Equal(t, "jc", entry["user_id"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("client", &buf)

	require.NoError(t, l.SetLevel("warn"))
	l.Info().Msg("filtered")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")

	assert.Error(t, l.SetLevel("loud"))
}
