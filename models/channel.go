package models

import (
	"fmt"
	"strings"
)

// Channel is the subset of channel state needed to track active channels.
type Channel struct {
	CID         string `json:"cid"`
	Type        string `json:"type"`
	ID          string `json:"id"`
	UnreadCount int    `json:"unread_count,omitempty"`
}

// ParseCID splits a "type:id" channel identifier.
func ParseCID(cid string) (channelType, channelID string, err error) {
	parts := strings.SplitN(cid, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid cid %q, expected type:id", cid)
	}
	return parts[0], parts[1], nil
}

// QueryChannelsRequest is the body of the query channels endpoint.
type QueryChannelsRequest struct {
	FilterConditions map[string]any `json:"filter_conditions"`
	Sort             []SortOption   `json:"sort,omitempty"`
	Offset           int            `json:"offset"`
	Limit            int            `json:"limit"`
	MessageLimit     int            `json:"message_limit"`
	State            bool           `json:"state"`
	Watch            bool           `json:"watch"`
	Presence         bool           `json:"presence"`
}

// SortOption orders query results by Field; Direction is 1 or -1.
type SortOption struct {
	Field     string `json:"field"`
	Direction int    `json:"direction"`
}

// QueryChannelsResponse wraps the channels returned by a query.
type QueryChannelsResponse struct {
	Channels []struct {
		Channel Channel `json:"channel"`
	} `json:"channels"`
}
