package utils // utils provides token issuing and hashing helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT together with its expiry. Access
// tokens are sent as a bearer in the Authorization header; the server
// issues no refresh tokens, so a client re-authenticates when one
// expires.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. Besides the
// standard sub/exp/iat claims it carries the user's email, name and
// surname so /auth/me can answer without an extra lookup by clients
// that only inspect the token.
func NewAccessToken(secret string, userID uint64, email, name, surname string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":     userID,
		"email":   email,
		"name":    name,
		"surname": surname,
		"exp":     exp.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry and returns the user id
// from the sub claim. The signing method is pinned to HMAC so a token
// signed with "none" or an asymmetric scheme is rejected.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, jwt.ErrTokenSignatureInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return uint64(sub), nil
}
