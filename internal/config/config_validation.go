// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged StructuredConfig. Only the bridge address is
// checked here; the full rule set runs on ClientConfig.
func (cfg *StructuredConfig) validate() error {
	if cfg.Bridge.HTTPAddress != "" {
		var addr NetAddress
		if err := addr.Set(cfg.Bridge.HTTPAddress); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidBridgeConfigs, err)
		}
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 ||
		!hasScheme(cfg.Adapter.HTTPAddress, "http", "https") ||
		!hasScheme(cfg.Adapter.WSAddress, "ws", "wss") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.HealthCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.APIKey == "" || cfg.App.UserID == "" {
		return ErrInvalidAppConfigs
	}

	// a token is either given or signed locally
	if cfg.App.UserToken == "" && cfg.App.APISecret == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func hasScheme(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return true
		}
	}
	return false
}
