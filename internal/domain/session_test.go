package domain

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "1",
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{AccessToken: "a"}.Authenticated())
	assert.True(t, Session{AccessToken: "a", RefreshToken: "r"}.Authenticated())
}

func TestSession_AccessExpired_FreshToken(t *testing.T) {
	now := time.Now()
	s := Session{AccessToken: signedToken(t, now.Add(time.Hour))}

	assert.False(t, s.AccessExpired(now))
}

func TestSession_AccessExpired_PastExpiry(t *testing.T) {
	now := time.Now()
	s := Session{AccessToken: signedToken(t, now.Add(-time.Minute))}

	assert.True(t, s.AccessExpired(now))
}

func TestSession_AccessExpired_UnreadableToken(t *testing.T) {
	// Opaque or malformed tokens are deferred to the server rather than
	// declared stale client-side.
	now := time.Now()

	assert.False(t, Session{}.AccessExpired(now))
	assert.False(t, Session{AccessToken: "not-a-jwt"}.AccessExpired(now))
}

func TestPendingAction_Valid(t *testing.T) {
	assert.True(t, PendingAction{Type: ActionAddToCart, MenuItemID: 1}.Valid())
	assert.True(t, PendingAction{Type: ActionBuyNow, MenuItemID: 2}.Valid())
	assert.False(t, PendingAction{Type: "unknown", MenuItemID: 1}.Valid())
	assert.False(t, PendingAction{Type: ActionBuyNow}.Valid())
}
