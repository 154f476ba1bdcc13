package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the credential pair for an authenticated storefront session.
// Tokens are set and cleared together: an absent access token implies an
// absent refresh token.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Authenticated reports whether the session carries a full credential pair.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// AccessExpired reports whether the access token's exp claim has definitively
// passed. The client holds no signing secret, so the claim is read without
// verifying the signature; the server remains the authority. Tokens without a
// readable exp claim are not reported expired: the server's 401 covers them.
func (s Session) AccessExpired(now time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return !now.Before(exp.Time)
}
