package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	sentinel := statusSentinel(status)
	body := strings.TrimSpace(string(resp.Body()))

	var chatErr models.ChatError
	if body != "" && json.Unmarshal([]byte(body), &chatErr) == nil && chatErr.Message != "" {
		if chatErr.StatusCode == 0 {
			chatErr.StatusCode = status
		}
		if sentinel == nil {
			sentinel = fmt.Errorf("http %d", status)
		}
		return chatErr.WithCause(sentinel)
	}

	if body == "" {
		body = http.StatusText(status)
	}
	if sentinel == nil {
		return fmt.Errorf("http %d: %s", status, body)
	}
	return fmt.Errorf("%w: %s", sentinel, body)
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}
