// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/models"
)

// chat backend error code for an expired token
const codeTokenExpired = 40

// mapAdapterError translates the adapter's transport error into a service
// error. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var target error
	switch {
	case errors.Is(err, adapter.ErrInvalidCID):
		target = ErrInvalidChannel
	case errors.Is(err, adapter.ErrUnauthorized):
		target = ErrTokenExpiredOrInvalid
	case errors.Is(err, adapter.ErrForbidden):
		target = ErrForbidden
	case errors.Is(err, adapter.ErrNotFound):
		target = ErrNotFound
	case errors.Is(err, adapter.ErrTooManyRequests):
		target = ErrRateLimited
	case errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrInternalServerError):
		target = ErrBackendUnavailable
	default:
		return err
	}

	return fmt.Errorf("%w: %w", target, err)
}

// mapSocketError translates a connect failure of the socket.
func mapSocketError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, socket.ErrRejected):
		var chatErr *models.ChatError
		if errors.As(err, &chatErr) &&
			(chatErr.Code == codeTokenExpired || chatErr.StatusCode == http.StatusUnauthorized) {
			return fmt.Errorf("%w: %w", ErrTokenExpiredOrInvalid, err)
		}
		return fmt.Errorf("%w: %w", ErrConnectionRejected, err)
	case errors.Is(err, socket.ErrDial), errors.Is(err, socket.ErrHandshake):
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return err
}

// connectCallError reports whether err is a failure the socket also returns
// from Connect or Reconnect.
func connectCallError(err error) bool {
	return errors.Is(err, socket.ErrDial) ||
		errors.Is(err, socket.ErrHandshake) ||
		errors.Is(err, socket.ErrRejected)
}
