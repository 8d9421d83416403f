package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-booking/internal/utils"
)

const testSecret = "test-secret"

func whoami(c echo.Context) error {
	role, _ := c.Get(RoleKey).(string)
	return c.JSON(http.StatusOK, echo.Map{"viewer": ViewerID(c), "role": role})
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", whoami, JWTAuth(testSecret))
	e.GET("/admin", whoami, JWTAuth(testSecret), RequireRole(RoleAdmin))

	user, err := utils.NewAccessToken(testSecret, "1ms21cs001", RoleUser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _ := utils.NewAccessToken(testSecret, "1ms21cs001", RoleUser, -time.Minute)
	foreign, _ := utils.NewAccessToken("other-secret", "1ms21cs001", RoleUser, time.Hour)

	numericSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 42, "role": RoleUser})
	numeric, _ := numericSub.SignedString([]byte(testSecret))

	noneTok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x", "role": RoleAdmin})
	none, _ := noneTok.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"valid", "/me", user.Token, http.StatusOK},
		{"missing", "/me", "", http.StatusUnauthorized},
		{"expired", "/me", expired.Token, http.StatusUnauthorized},
		{"wrong secret", "/me", foreign.Token, http.StatusUnauthorized},
		{"non-string subject", "/me", numeric, http.StatusUnauthorized},
		{"alg none", "/me", none, http.StatusUnauthorized},
		{"role not allowed", "/admin", user.Token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodGet, tt.path, tt.token)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := serve(e, http.MethodGet, "/me", user.Token)
	if body := rec.Body.String(); body != "{\"role\":\"USER\",\"viewer\":\"1ms21cs001\"}\n" {
		t.Fatalf("body = %s", body)
	}
}
