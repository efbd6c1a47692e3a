package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
)

// NetAddress holds a listen address for the bridge. It implements
// flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses args into a StructuredConfig. Parsing stops on the
// first error; -h yields flag.ErrHelp.
//
// Flags:
//
//	-k / -api-key       chat API key
//	-s / -api-secret    API secret for development tokens
//	-u / -user          user id
//	-name               user display name
//	-t / -token         user JWT
//	-http-address       REST base URL
//	-ws-address         websocket base URL
//	-request-timeout    REST and handshake timeout (e.g. "10s")
//	-d                  SQLite DSN
//	-sync-interval      sync state persistence interval
//	-health-interval    websocket health check interval
//	-a                  bridge listen address [host]:port
//	-bridge-token       bearer token required by the bridge
//	-headless           run without the dashboard
//	-log-file           log file path
//	-log-level          log level
//	-c / -config        JSON config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("chat-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfg StructuredConfig
	var bridge NetAddress

	fs.StringVar(&cfg.App.APIKey, "k", "", "Chat API key")
	fs.StringVar(&cfg.App.APIKey, "api-key", "", "Chat API key (alias)")
	fs.StringVar(&cfg.App.APISecret, "s", "", "API secret for development tokens")
	fs.StringVar(&cfg.App.APISecret, "api-secret", "", "API secret (alias)")
	fs.StringVar(&cfg.App.UserID, "u", "", "User id")
	fs.StringVar(&cfg.App.UserID, "user", "", "User id (alias)")
	fs.StringVar(&cfg.App.UserName, "name", "", "User display name")
	fs.StringVar(&cfg.App.UserToken, "t", "", "User token")
	fs.StringVar(&cfg.App.UserToken, "token", "", "User token (alias)")

	fs.StringVar(&cfg.Adapter.HTTPAddress, "http-address", "", "REST base URL")
	fs.StringVar(&cfg.Adapter.WSAddress, "ws-address", "", "Websocket base URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")

	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "SQLite DSN")

	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Sync state interval (e.g., 30s)")
	fs.DurationVar(&cfg.Workers.HealthCheckInterval, "health-interval", 0, "Health check interval (e.g., 30s)")

	fs.Var(&bridge, "a", "Bridge listen address [host]:port")
	fs.StringVar(&cfg.Bridge.Token, "bridge-token", "", "Bearer token required by the bridge")
	fs.BoolVar(&cfg.UI.Headless, "headless", false, "Run without the dashboard")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Bridge.HTTPAddress = bridge.String()
	return &cfg, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty, "localhost" or an IP.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

