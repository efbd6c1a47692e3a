package config

import (
	"fmt"
	"os"
	"time"
)

// ClientApp holds credentials and the user to connect.
type ClientApp struct {
	APIKey    string
	APISecret string
	UserID    string
	UserName  string
	UserToken string
	Version   string
}

// ClientAdapter holds chat backend endpoints.
type ClientAdapter struct {
	// HTTPAddress is the REST base URL.
	HTTPAddress string
	// WSAddress is the websocket base URL.
	WSAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains background job settings.
type ClientWorkers struct {
	// SyncInterval defines how often sync state is persisted.
	SyncInterval time.Duration
	// HealthCheckInterval defines how often the socket pings the backend.
	HealthCheckInterval time.Duration
}

// ClientBridge configures the local control API.
type ClientBridge struct {
	HTTPAddress string
	Token       string
}

// Enabled reports whether the bridge should be started.
func (b ClientBridge) Enabled() bool {
	return b.HTTPAddress != ""
}

type ClientUI struct {
	Headless bool
}

type ClientLog struct {
	File  string
	Level string
}

// ClientConfig is the validated configuration consumed by the client app.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Bridge  ClientBridge
	UI      ClientUI
	Log     ClientLog
}

// GetClientConfig builds and validates the client config from os.Args and
// the process environment.
func GetClientConfig() (*ClientConfig, error) {
	return LoadClientConfig(os.Args[1:])
}

// LoadClientConfig builds and validates the client config using args as
// the command line.
func LoadClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.toClient()
	return clientCfg, clientCfg.validate()
}

func (cfg *StructuredConfig) toClient() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			APIKey:    cfg.App.APIKey,
			APISecret: cfg.App.APISecret,
			UserID:    cfg.App.UserID,
			UserName:  cfg.App.UserName,
			UserToken: cfg.App.UserToken,
			Version:   cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			WSAddress:      cfg.Adapter.WSAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval:        cfg.Workers.SyncInterval,
			HealthCheckInterval: cfg.Workers.HealthCheckInterval,
		},
		Bridge: ClientBridge{HTTPAddress: cfg.Bridge.HTTPAddress, Token: cfg.Bridge.Token},
		UI:     ClientUI{Headless: cfg.UI.Headless},
		Log:    ClientLog{File: cfg.Log.File, Level: cfg.Log.Level},
	}
}
