package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/go-resty/resty/v2"
)

type httpChatAdapter struct {
	client *utils.HTTPClient
	apiKey string

	mu           sync.RWMutex
	token        string
	userID       string
	connectionID string

	logger *logger.Logger
}

// NewHTTPChatAdapter builds the resty-backed [ChatAPI]. The base URL comes
// from adapterCfg.HTTPAddress; a missing scheme defaults to https.
func NewHTTPChatAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (ChatAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpChatAdapter{
		client: client,
		apiKey: appCfg.APIKey,
		logger: log.WithComponent("chat-api"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("address must include http(s) scheme and host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpChatAdapter) SetConnection(conn models.ConnectionData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userID = conn.User.ID
	h.connectionID = conn.ConnectionID
}

func (h *httpChatAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpChatAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// MuteUser implements [ChatAPI] via POST /moderation/mute.
func (h *httpChatAdapter) MuteUser(ctx context.Context, targetID string) (models.MuteUserResponse, error) {
	var out models.MuteUserResponse

	resp, err := h.authedRequest(ctx).
		SetBody(models.MuteUserRequest{TargetID: targetID, UserID: h.currentUserID()}).
		SetResult(&out).
		Post("/moderation/mute")
	if err != nil {
		return models.MuteUserResponse{}, fmt.Errorf("mute user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MuteUserResponse{}, err
	}

	return out, nil
}

// UnmuteUser implements [ChatAPI] via POST /moderation/unmute.
func (h *httpChatAdapter) UnmuteUser(ctx context.Context, targetID string) error {
	resp, err := h.authedRequest(ctx).
		SetBody(models.MuteUserRequest{TargetID: targetID, UserID: h.currentUserID()}).
		Post("/moderation/unmute")
	if err != nil {
		return fmt.Errorf("unmute user request: %w", err)
	}

	return mapHTTPError(resp)
}

// MarkAllRead implements [ChatAPI] via POST /channels/read.
func (h *httpChatAdapter) MarkAllRead(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).
		SetBody(map[string]any{}).
		Post("/channels/read")
	if err != nil {
		return fmt.Errorf("mark all read request: %w", err)
	}

	return mapHTTPError(resp)
}

// MarkRead implements [ChatAPI] via POST /channels/{type}/{id}/read.
func (h *httpChatAdapter) MarkRead(ctx context.Context, cid, messageID string) error {
	req, err := h.channelRequest(ctx, cid)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(map[string]string{"message_id": messageID}).
		Post("/channels/{type}/{id}/read")
	if err != nil {
		return fmt.Errorf("mark read request: %w", err)
	}

	return mapHTTPError(resp)
}

// QueryChannels implements [ChatAPI] via POST /channels.
func (h *httpChatAdapter) QueryChannels(ctx context.Context, query models.QueryChannelsRequest) ([]models.Channel, error) {
	var out models.QueryChannelsResponse

	resp, err := h.authedRequest(ctx).
		SetBody(query).
		SetResult(&out).
		Post("/channels")
	if err != nil {
		return nil, fmt.Errorf("query channels request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	channels := make([]models.Channel, 0, len(out.Channels))
	for _, c := range out.Channels {
		ch := c.Channel
		if ch.CID == "" && ch.Type != "" && ch.ID != "" {
			ch.CID = ch.Type + ":" + ch.ID
		}
		channels = append(channels, ch)
	}

	h.logger.Debug().Int("count", len(channels)).Msg("channels queried")
	return channels, nil
}

// StopWatching implements [ChatAPI] via POST /channels/{type}/{id}/stop-watching.
func (h *httpChatAdapter) StopWatching(ctx context.Context, cid string) error {
	req, err := h.channelRequest(ctx, cid)
	if err != nil {
		return err
	}

	resp, err := req.
		SetBody(map[string]any{}).
		Post("/channels/{type}/{id}/stop-watching")
	if err != nil {
		return fmt.Errorf("stop watching request: %w", err)
	}

	return mapHTTPError(resp)
}

// AddDevice implements [ChatAPI] via POST /devices.
func (h *httpChatAdapter) AddDevice(ctx context.Context, device models.Device) error {
	if device.UserID == "" {
		device.UserID = h.currentUserID()
	}

	resp, err := h.authedRequest(ctx).
		SetBody(device).
		Post("/devices")
	if err != nil {
		return fmt.Errorf("add device request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetDevices implements [ChatAPI] via GET /devices.
func (h *httpChatAdapter) GetDevices(ctx context.Context) ([]models.Device, error) {
	var out models.DevicesResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/devices")
	if err != nil {
		return nil, fmt.Errorf("get devices request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return out.Devices, nil
}

// DeleteDevice implements [ChatAPI] via DELETE /devices?id=.
func (h *httpChatAdapter) DeleteDevice(ctx context.Context, deviceID string) error {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("id", deviceID).
		Delete("/devices")
	if err != nil {
		return fmt.Errorf("delete device request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpChatAdapter) currentUserID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userID
}

func (h *httpChatAdapter) authedRequest(ctx context.Context) *resty.Request {
	h.mu.RLock()
	token, userID, connectionID := h.token, h.userID, h.connectionID
	h.mu.RUnlock()

	req := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":       h.apiKey,
			"user_id":       userID,
			"connection_id": connectionID,
		}).
		SetHeader("stream-auth-type", "jwt")
	if token != "" {
		req.SetHeader("Authorization", token)
	}
	return req
}

func (h *httpChatAdapter) channelRequest(ctx context.Context, cid string) (*resty.Request, error) {
	channelType, channelID, err := models.ParseCID(cid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCID, err)
	}

	return h.authedRequest(ctx).SetPathParams(map[string]string{
		"type": channelType,
		"id":   channelID,
	}), nil
}
