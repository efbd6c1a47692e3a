// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the bridge token middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header cannot be
	// split into a scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the scheme is present but the token is
	// an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrWrongBridgeToken is returned when the token does not match the
	// configured bridge token.
	ErrWrongBridgeToken = errors.New("wrong bridge token")
)

// ErrLifecycleNotArmed is returned by the lifecycle endpoint before the
// first successful connect.
var ErrLifecycleNotArmed = errors.New("lifecycle observer is not registered yet, connect a user first")
