// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the raw configuration assembled from defaults,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds chat credentials and the identity of the user to connect.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the chat backend REST and websocket endpoints.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Bridge holds the local control API settings.
	Bridge Bridge `envPrefix:"BRIDGE_"`

	UI  UI  `envPrefix:"UI_"`
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds chat application credentials.
type App struct {
	// APIKey identifies the chat application.
	// Env: APP_API_KEY
	APIKey string `env:"API_KEY"`

	// APISecret signs development tokens when no UserToken is given.
	// Never ship it in production clients.
	// Env: APP_API_SECRET
	APISecret string `env:"API_SECRET"`

	// UserID and UserName describe the user to connect.
	// Env: APP_USER_ID, APP_USER_NAME
	UserID   string `env:"USER_ID"`
	UserName string `env:"USER_NAME"`

	// UserToken is a pre-issued JWT for UserID.
	// Env: APP_USER_TOKEN
	UserToken string `env:"USER_TOKEN"`

	// Version is reported by the bridge version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection string.
type DB struct {
	// DSN is the go-sqlite3 data source name (e.g. "chat-sdk.db" or
	// "file:chat.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds chat backend endpoints.
type Adapter struct {
	// HTTPAddress is the REST base URL.
	// Env: ADAPTER_HTTP_ADDRESS
	HTTPAddress string `env:"HTTP_ADDRESS"`

	// WSAddress is the websocket base URL.
	// Env: ADAPTER_WS_ADDRESS
	WSAddress string `env:"WS_ADDRESS"`

	// RequestTimeout bounds every REST call and the websocket handshake.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job intervals.
type Workers struct {
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
	// Env: WORKERS_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// Bridge holds the local control API settings. An empty address disables
// the bridge.
type Bridge struct {
	// Env: BRIDGE_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: BRIDGE_TOKEN. When set, requests must carry it as a bearer token.
	Token string `env:"TOKEN"`
}

// UI holds dashboard settings.
type UI struct {
	// Headless skips the terminal dashboard.
	// Env: UI_HEADLESS
	Headless bool `env:"HEADLESS"`
}

// Log holds logger settings.
type Log struct {
	// Env: LOG_FILE
	File string `env:"FILE"`
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Defaults used when no source sets a value.
const (
	DefaultHTTPAddress         = "https://chat.stream-io-api.com"
	DefaultWSAddress           = "wss://chat.stream-io-api.com"
	DefaultRequestTimeout      = 10 * time.Second
	DefaultDSN                 = "chat-sdk.db"
	DefaultSyncInterval        = 30 * time.Second
	DefaultHealthCheckInterval = 30 * time.Second
	DefaultLogLevel            = "debug"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			WSAddress:      DefaultWSAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SyncInterval:        DefaultSyncInterval,
			HealthCheckInterval: DefaultHealthCheckInterval,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// GetStructuredConfig loads and merges configuration in this order, later
// non-zero values winning:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags from args
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// GetStructuredConfigFromOS is GetStructuredConfig over os.Args.
func GetStructuredConfigFromOS() (*StructuredConfig, error) {
	return GetStructuredConfig(os.Args[1:])
}
