package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken("s3cret", " 1ms21cs001 ", "USER", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tok.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims["sub"] != "1ms21cs001" || claims["role"] != "USER" {
		t.Fatalf("claims = %v", claims)
	}
	if time.Until(tok.Exp) < 59*time.Minute {
		t.Fatalf("exp = %v", tok.Exp)
	}
}

func TestNewAccessToken_EmptySubject(t *testing.T) {
	if _, err := NewAccessToken("s", "  ", "USER", time.Hour); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("err = %v, want ErrEmptySubject", err)
	}
}
