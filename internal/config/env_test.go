// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_API_KEY":    "key",
		"APP_API_SECRET": "secret",
		"APP_USER_ID":    "jc",
		"APP_USER_NAME":  "Jon Snow",
		"APP_USER_TOKEN": "token",
		"APP_VERSION":    "1.2.3",

		"ADAPTER_HTTP_ADDRESS":    "https://chat.example.com",
		"ADAPTER_WS_ADDRESS":      "wss://chat.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "5s",

		"STORAGE_DB_DATABASE_URI": "client.db",

		"WORKERS_SYNC_INTERVAL":         "1m",
		"WORKERS_HEALTH_CHECK_INTERVAL": "25s",

		"BRIDGE_ADDRESS": "localhost:8089",
		"UI_HEADLESS":    "true",
		"LOG_FILE":       "/tmp/chat.log",
		"LOG_LEVEL":      "info",
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "key", cfg.App.APIKey)
	assert.Equal(t, "secret", cfg.App.APISecret)
	assert.Equal(t, "jc", cfg.App.UserID)
	assert.Equal(t, "Jon Snow", cfg.App.UserName)
	assert.Equal(t, "token", cfg.App.UserToken)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "https://chat.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "wss://chat.example.com", cfg.Adapter.WSAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)

	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 25*time.Second, cfg.Workers.HealthCheckInterval)

	assert.Equal(t, "localhost:8089", cfg.Bridge.HTTPAddress)
	assert.True(t, cfg.UI.Headless)
	assert.Equal(t, "/tmp/chat.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseEnv_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{}))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidBool(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{"UI_HEADLESS": "maybe"})
	require.Error(t, err)
}

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("APP_USER_ID", "from-process")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "from-process", cfg.App.UserID)
}
