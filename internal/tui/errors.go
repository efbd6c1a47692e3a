// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-chat-sdk/internal/service"
)

// humanizeError shortens network and backend failures to something a user
// can act on.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrTokenExpiredOrInvalid):
		return "Token is expired or invalid, reconnect with a fresh token"
	case errors.Is(err, service.ErrNotConnected):
		return "No user is connected"
	case errors.Is(err, service.ErrRateLimited):
		return "Too many requests, try again later"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network is down or the chat backend is unreachable"
	}

	return err.Error()
}
