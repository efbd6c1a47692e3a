package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outbound REST request.
const UserAgent = "go-chat-sdk"

// HTTPClient embeds *resty.Client so callers get the full resty API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client rooted at baseURL. A non-positive
// timeout leaves resty's default (no timeout). Retries are off; the chat
// client does not retry failed calls.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://chat.example.com", 10*time.Second)
//	resp, err := client.R().SetResult(&out).Get("/devices")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)

	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return &HTTPClient{Client: c}
}
