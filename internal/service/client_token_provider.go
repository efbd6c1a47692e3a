package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/utils"
)

type staticTokenProvider struct {
	token string
}

// NewStaticTokenProvider returns a provider that always yields token.
func NewStaticTokenProvider(token string) TokenProvider {
	return &staticTokenProvider{token: token}
}

func (p *staticTokenProvider) Token(_ context.Context, _ string) (string, error) {
	if p.token == "" {
		return "", ErrInvalidToken
	}
	return p.token, nil
}

type devTokenProvider struct {
	secret string
	ttl    time.Duration
}

// NewDevTokenProvider signs tokens locally with the API secret. Meant for
// development setups only; production tokens come from the app backend.
func NewDevTokenProvider(apiSecret string, ttl time.Duration) TokenProvider {
	return &devTokenProvider{secret: apiSecret, ttl: ttl}
}

func (p *devTokenProvider) Token(_ context.Context, userID string) (string, error) {
	if p.secret == "" {
		return "", ErrNoTokenSecret
	}
	token, err := utils.GenerateUserToken(userID, p.secret, p.ttl)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return token, nil
}

// checkTokenUser verifies that token carries userID in its user_id claim.
func checkTokenUser(token, userID string) error {
	claimed, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claimed != userID {
		return fmt.Errorf("%w: token user %q, connecting %q", ErrUserMismatch, claimed, userID)
	}
	return nil
}
