package utils // package utils provides token helpers shared by the server and dev tooling

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken is a signed JWT with its expiry.  Viewers send it in the
// Authorization header of every seat request.
type AccessToken struct {
	Token string    `json:"access_token"`
	Exp   time.Time `json:"expires_at"`
}

// ErrEmptySubject is returned when a token would carry no viewer id.
var ErrEmptySubject = errors.New("empty token subject")

// NewAccessToken builds and signs an HS256 JWT for a viewer.  The subject is
// the viewer id (for students, their USN); role is one of ADMIN, USER or
// VOLUNTEER.  Tokens are issued by the identity provider in production; this
// helper serves tests and the dev token command.
func NewAccessToken(secret, viewerID, role string, ttl time.Duration) (AccessToken, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return AccessToken{}, ErrEmptySubject
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   viewerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, roleClaims{RegisteredClaims: claims, Role: role})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

type roleClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}
