package client

import "errors"

var (
	ErrNoServices    = errors.New("client services are required")
	ErrNoCredentials = errors.New("neither a user token nor an api secret is configured")
)
