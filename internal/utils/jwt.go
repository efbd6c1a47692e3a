package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDClaim is the claim carrying the chat user id.
const UserIDClaim = "user_id"

// ErrMissingUserID is returned when a token has no user_id claim.
var ErrMissingUserID = errors.New("token has no user_id claim")

// UserClaims are the claims of a chat user token.
type UserClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateUserToken signs an HS256 user token with the API secret. A zero
// ttl yields a token without expiry, as chat backends accept for
// development tokens.
//
// Example usage:
//
//	token, err := utils.GenerateUserToken("jc", "secret", time.Hour)
func GenerateUserToken(userID, apiSecret string, ttl time.Duration) (string, error) {
	if userID == "" || apiSecret == "" {
		return "", errors.New("invalid params for generating user token")
	}

	claims := UserClaims{UserID: userID}
	if ttl > 0 {
		now := time.Now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(apiSecret))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing user token: %w", err)
	}
	return signed, nil
}

// ValidateUserToken verifies signature and expiry and returns the user id.
func ValidateUserToken(tokenString, apiSecret string) (string, error) {
	var claims UserClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(apiSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating user token: %w", err)
	}

	if claims.UserID == "" {
		return "", ErrMissingUserID
	}
	return claims.UserID, nil
}

// ParseUserIDFromJWT reads the user_id claim without verifying the
// signature. The client cannot verify tokens issued by a backend, it only
// checks they belong to the user being connected.
func ParseUserIDFromJWT(tokenString string) (string, error) {
	var claims UserClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return "", err
	}

	if claims.UserID == "" {
		return "", ErrMissingUserID
	}
	return claims.UserID, nil
}
