package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenInfo is display metadata peeked from a bearer token. Parsing is
// deliberately unverified: signature checks belong to the collaborator, and
// an expired token is reported, never acted on. Whether expiry should force
// a logout is a policy decision left to the caller.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past. Tokens
// without an exp claim never read as expired.
func (t TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(time.Now())
}

// PeekToken decodes claims from a JWT bearer token without verifying it.
// Basic tokens and malformed values return false.
func PeekToken(token string) (TokenInfo, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(token, "Bearer"))
	if raw == "" || strings.HasPrefix(token, "Basic ") {
		return TokenInfo{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, false
	}
	var info TokenInfo
	if sub, ok := claims["sub"].(string); ok {
		info.Subject = sub
	}
	switch exp := claims["exp"].(type) {
	case float64:
		info.ExpiresAt = time.Unix(int64(exp), 0)
	case int64:
		info.ExpiresAt = time.Unix(exp, 0)
	}
	return info, true
}
