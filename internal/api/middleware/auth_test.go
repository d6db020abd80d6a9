package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuth_ValidTokenSetsClaims(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"username": "alice",
		"roles":    []string{"Manager", "Employee"},
		"exp":      time.Now().Add(time.Minute).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var gotUser any
	var gotRoles []string
	err := Auth("secret")(func(c echo.Context) error {
		gotUser = c.Get("username")
		gotRoles, _ = c.Get("roles").([]string)
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUser != "alice" {
		t.Fatalf("username claim not propagated: %v", gotUser)
	}
	if len(gotRoles) != 2 || gotRoles[0] != "Manager" || gotRoles[1] != "Employee" {
		t.Fatalf("roles claim not propagated: %v", gotRoles)
	}
}

func TestAuth_Rejects(t *testing.T) {
	expired := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"username": "alice"})
	wrongAlg := sign(t, jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"username": "alice"})

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Token abc",
		"bearer only":     "Bearer",
		"garbage token":   "Bearer not-a-token",
		"expired token":   "Bearer " + expired,
		"wrong secret":    "Bearer " + wrongKey,
		"wrong algorithm": "Bearer " + wrongAlg,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			err := Auth("secret")(func(c echo.Context) error {
				t.Fatal("next must not run")
				return nil
			})(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestRolesClaim_IgnoresNonStrings(t *testing.T) {
	roles := rolesClaim(jwt.MapClaims{"roles": []any{"Admin", 7, "Employee"}})
	if len(roles) != 2 || roles[0] != "Admin" || roles[1] != "Employee" {
		t.Fatalf("unexpected roles: %v", roles)
	}
	if got := rolesClaim(jwt.MapClaims{}); len(got) != 0 {
		t.Fatalf("expected no roles, got %v", got)
	}
}
