package utils // utils provides helper functions for access token creation

import (
	"time" // time utilities for computing expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its
// expiry. The Token field contains the serialized JWT string; Exp is
// the UTC expiration time. Tokens are issued by the platform's auth
// service; this helper mirrors its claims so integration tests can
// authenticate against the booking endpoints.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes
// the signing secret, the user ID and a TTL in minutes. The JWT
// carries the standard claims: subject (sub), expiration (exp) and
// issued at (iat).
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
