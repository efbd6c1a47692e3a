package streamchat

import (
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
)

// Options configure a [Client]. Zero values fall back to the defaults of
// the public chat backend.
type Options struct {
	APIKey string

	// APISecret signs development tokens for ConnectDevUser. Never ship it
	// in production builds.
	APISecret string

	HTTPAddress    string
	WSAddress      string
	RequestTimeout time.Duration

	// HealthCheckInterval is the socket keep-alive period.
	HealthCheckInterval time.Duration

	// LogFile enables SDK logging to the given file. Empty disables logging.
	LogFile  string
	LogLevel string
}

func (o Options) withDefaults() Options {
	if o.HTTPAddress == "" {
		o.HTTPAddress = config.DefaultHTTPAddress
	}
	if o.WSAddress == "" {
		o.WSAddress = config.DefaultWSAddress
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = config.DefaultRequestTimeout
	}
	if o.HealthCheckInterval <= 0 {
		o.HealthCheckInterval = config.DefaultHealthCheckInterval
	}
	if o.LogLevel == "" {
		o.LogLevel = config.DefaultLogLevel
	}
	return o
}

func (o Options) appConfig() config.ClientApp {
	return config.ClientApp{APIKey: o.APIKey, APISecret: o.APISecret}
}

func (o Options) adapterConfig() config.ClientAdapter {
	return config.ClientAdapter{
		HTTPAddress:    o.HTTPAddress,
		WSAddress:      o.WSAddress,
		RequestTimeout: o.RequestTimeout,
	}
}

func (o Options) workersConfig() config.ClientWorkers {
	return config.ClientWorkers{HealthCheckInterval: o.HealthCheckInterval}
}
