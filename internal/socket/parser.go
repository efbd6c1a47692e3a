package socket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-sdk/models"
)

type messageKind int

const (
	messageDropped messageKind = iota
	messageConnected
	messageEvent
	messageRejected
)

// envelope is a backend message; Error is set only on rejected handshakes.
type envelope struct {
	models.Event
	Error *models.ChatError `json:"error,omitempty"`
}

// eventsParser classifies raw messages for one connection attempt.
type eventsParser struct {
	connected bool
	now       func() time.Time
}

func newEventsParser() *eventsParser {
	return &eventsParser{now: time.Now}
}

// parse decodes data and reports what it means for the connection. Before
// the connection is established, only a message carrying "me" (connected)
// or an error payload (rejected) matter; anything else is dropped.
func (p *eventsParser) parse(data []byte) (envelope, messageKind, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, messageDropped, fmt.Errorf("decode socket message: %w", err)
	}
	env.ReceivedAt = p.now()

	if !p.connected {
		switch {
		case env.Error != nil:
			return env, messageRejected, nil
		case env.Me != nil:
			p.connected = true
			return env, messageConnected, nil
		default:
			return env, messageDropped, nil
		}
	}

	return env, messageEvent, nil
}
