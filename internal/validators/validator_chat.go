package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-chat-sdk/models"
)

// Field names accepted by ChatValidator.
const (
	FieldUserID           = "user_id"
	FieldDeviceID         = "device_id"
	FieldPushProvider     = "push_provider"
	FieldCID              = "cid"
	FieldActiveChannelIDs = "active_channel_ids"
	FieldLastSyncedAt     = "last_synced_at"
)

// backend limits
const (
	maxUserIDLength   = 255
	maxDeviceIDLength = 255
)

var allowedPushProviders = []string{"firebase", "apn", "huawei", "xiaomi"}

type ChatValidator struct{}

func NewChatValidator() Validator {
	return &ChatValidator{}
}

func (v *ChatValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		if value == nil {
			return ErrNilValue
		}
		return v.validateUser(*value, fields...)

	case models.Device:
		return v.validateDevice(value, fields...)
	case *models.Device:
		if value == nil {
			return ErrNilValue
		}
		return v.validateDevice(*value, fields...)

	case models.Channel:
		return v.validateChannel(value, fields...)
	case *models.Channel:
		if value == nil {
			return ErrNilValue
		}
		return v.validateChannel(*value, fields...)

	case models.SyncState:
		return v.validateSyncState(value, fields...)
	case *models.SyncState:
		if value == nil {
			return ErrNilValue
		}
		return v.validateSyncState(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidUserID allows the characters the chat backend accepts in ids:
// letters, digits, '@', '_' and '-'.
func isValidUserID(id string) bool {
	if id == "" || len(id) > maxUserIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '@', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func (v *ChatValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if !isValidUserID(user.ID) {
				return fmt.Errorf("%w: %q", ErrInvalidUserID, user.ID)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ChatValidator) validateDevice(device models.Device, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceID, FieldPushProvider}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceID:
			if device.ID == "" || len(device.ID) > maxDeviceIDLength {
				return ErrInvalidDeviceID
			}
		case FieldPushProvider:
			if !slices.Contains(allowedPushProviders, device.PushProvider) {
				return fmt.Errorf("%w: %q", ErrInvalidPushProvider, device.PushProvider)
			}
		case FieldUserID:
			// optional, the backend fills in the connected user
			if device.UserID != "" && !isValidUserID(device.UserID) {
				return ErrInvalidUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ChatValidator) validateChannel(channel models.Channel, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCID}
	}

	for _, f := range fields {
		switch f {
		case FieldCID:
			if _, _, err := models.ParseCID(channel.CID); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidCID, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ChatValidator) validateSyncState(state models.SyncState, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldActiveChannelIDs, FieldLastSyncedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if !isValidUserID(state.UserID) {
				return ErrInvalidUserID
			}
		case FieldActiveChannelIDs:
			for _, cid := range state.ActiveChannelIDs {
				if _, _, err := models.ParseCID(cid); err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidCID, err)
				}
			}
		case FieldLastSyncedAt:
			if state.LastSyncedAt == nil || state.LastSyncedAt.IsZero() {
				return ErrInvalidSyncTime
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
