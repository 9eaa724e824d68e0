package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields the client reads off its stored bearer token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// DecodeToken parses the token WITHOUT signature verification. The backend
// is the verifier; the client only reads role and expiry once at session
// hydration, so a forged token buys nothing beyond a rejected request.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	claims := &TokenClaims{}
	claims.UserID, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.Role, _ = mapClaims["role"].(string)

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim are treated as live; the server decides.
func (c *TokenClaims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
