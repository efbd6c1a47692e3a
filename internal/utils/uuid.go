package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered ids.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, or a random UUID if v7 generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// ClientID returns the "<user>--<uuid>" id a socket connection announces.
func (g *UUIDGenerator) ClientID(userID string) string {
	return userID + "--" + g.Generate()
}
