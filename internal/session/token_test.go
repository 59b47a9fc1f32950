package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestPeekTokenReadsClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Unix()
	tok := signToken(t, jwt.MapClaims{"sub": "admin", "exp": float64(exp)})

	info, ok := PeekToken("Bearer " + tok)
	require.True(t, ok)
	require.Equal(t, "admin", info.Subject)
	require.Equal(t, exp, info.ExpiresAt.Unix())
	require.False(t, info.Expired())
}

func TestPeekTokenExpired(t *testing.T) {
	t.Parallel()

	tok := signToken(t, jwt.MapClaims{"exp": float64(time.Now().Add(-time.Hour).Unix())})
	info, ok := PeekToken(tok)
	require.True(t, ok)
	require.True(t, info.Expired())
}

func TestPeekTokenNoExpiry(t *testing.T) {
	t.Parallel()

	tok := signToken(t, jwt.MapClaims{"sub": "admin"})
	info, ok := PeekToken(tok)
	require.True(t, ok)
	require.False(t, info.Expired())
}

func TestPeekTokenRejectsBasicAndGarbage(t *testing.T) {
	t.Parallel()

	_, ok := PeekToken("Basic YWRtaW46c2VjcmV0")
	require.False(t, ok)
	_, ok = PeekToken("not-a-jwt")
	require.False(t, ok)
	_, ok = PeekToken("")
	require.False(t, ok)
}
