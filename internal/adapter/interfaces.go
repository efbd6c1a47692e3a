// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the chat backend REST API.
//
// [ChatAPI] decouples the service layer from the transport. Every request
// carries the API key and the current connection (user id and connection id)
// as query parameters, and the user JWT in the Authorization header.
//
// Non-2xx responses are mapped to the sentinel errors in errors.go. When the
// backend sends a JSON error body, it is decoded into [models.ChatError],
// which wraps the sentinel so [errors.Is] keeps working.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-sdk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/chat_api_mock.go -package=mock

// ChatAPI is the REST surface the chat client needs.
type ChatAPI interface {
	// SetConnection records the connected user and connection id. Requests
	// made before the first call carry empty values.
	SetConnection(conn models.ConnectionData)

	// SetToken stores the JWT attached to every request.
	SetToken(token string)

	// Token returns the stored JWT, or "".
	Token() string

	// MuteUser mutes targetID for the connected user. The response carries
	// the refreshed own user.
	MuteUser(ctx context.Context, targetID string) (models.MuteUserResponse, error)

	// UnmuteUser removes a mute on targetID.
	UnmuteUser(ctx context.Context, targetID string) error

	// MarkAllRead marks every channel of the connected user as read.
	MarkAllRead(ctx context.Context) error

	// MarkRead marks one channel as read up to messageID ("" for latest).
	MarkRead(ctx context.Context, cid, messageID string) error

	// QueryChannels returns the channels matching req.
	QueryChannels(ctx context.Context, req models.QueryChannelsRequest) ([]models.Channel, error)

	// StopWatching stops receiving events for the channel.
	StopWatching(ctx context.Context, cid string) error

	// AddDevice registers a push device for the connected user.
	AddDevice(ctx context.Context, device models.Device) error

	// GetDevices lists the connected user's push devices.
	GetDevices(ctx context.Context) ([]models.Device, error)

	// DeleteDevice removes a push device.
	DeleteDevice(ctx context.Context, deviceID string) error
}
