package middleware // reusable HTTP middleware for the seat API

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming of the Authorization header

	"github.com/golang-jwt/jwt/v5" // token parsing and validation
	"github.com/labstack/echo/v4"  // middleware and handler types
)

// Context keys written by JWTAuth.
const (
	ViewerKey = "viewer_id"
	RoleKey   = "role"
)

// JWTAuth returns an Echo middleware that validates an HS256 Bearer token and
// stores its subject (the viewer id) and role claim in the context.  Viewer
// ids are strings such as a USN; a token without a non-empty string subject is
// rejected, because every seat operation is scoped to the viewer.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims := jwt.MapClaims{}
			tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			sub, err := claims.GetSubject()
			if err != nil || strings.TrimSpace(sub) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(ViewerKey, strings.TrimSpace(sub))
			// role is optional here; RequireRole decides whether it matters
			if role, ok := claims["role"].(string); ok {
				c.Set(RoleKey, role)
			}
			return next(c)
		}
	}
}

// ViewerID returns the authenticated viewer, or "" outside JWTAuth.
func ViewerID(c echo.Context) string {
	v, _ := c.Get(ViewerKey).(string)
	return v
}
