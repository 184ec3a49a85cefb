package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testCfg = Config{Secret: []byte("test-secret"), Issuer: "hcas"}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (int, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := h(c)
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr.Code, err
		}
		return 0, err
	}
	return rec.Code, nil
}

func TestMiddlewareValidToken(t *testing.T) {
	token, err := SignToken(testCfg, "user-1", []string{RoleReceptionist}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	code, err := doRequest(t, Middleware(testCfg), "Bearer "+token)
	if err != nil || code != http.StatusOK {
		t.Fatalf("want 200, got %d (%v)", code, err)
	}
}

func TestMiddlewareMissingHeader(t *testing.T) {
	code, _ := doRequest(t, Middleware(testCfg), "")
	if code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", code)
	}
}

func TestMiddlewareWrongSecret(t *testing.T) {
	token, err := SignToken(Config{Secret: []byte("other"), Issuer: "hcas"}, "user-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	code, _ := doRequest(t, Middleware(testCfg), "Bearer "+token)
	if code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", code)
	}
}

func TestMiddlewareExpiredToken(t *testing.T) {
	token, err := SignToken(testCfg, "user-1", nil, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	code, _ := doRequest(t, Middleware(testCfg), "Bearer "+token)
	if code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", code)
	}
}

func TestMiddlewareSetsContext(t *testing.T) {
	token, err := SignToken(testCfg, "user-9", []string{RoleDoctor}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware(testCfg)(func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != "user-9" {
			t.Errorf("user id = %q", got)
		}
		roles := RolesFromContext(ctx)
		if len(roles) != 1 || roles[0] != RoleDoctor {
			t.Errorf("roles = %v", roles)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		want  int
	}{
		{"matching role", []string{RoleReceptionist}, http.StatusOK},
		{"admin always passes", []string{RoleAdmin}, http.StatusOK},
		{"wrong role", []string{RoleDoctor}, http.StatusForbidden},
		{"no roles", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := SignToken(testCfg, "u", tc.roles, time.Minute)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			mw := func(next echo.HandlerFunc) echo.HandlerFunc {
				return Middleware(testCfg)(RequireRole(RoleReceptionist)(next))
			}
			code, _ := doRequest(t, mw, "Bearer "+token)
			if code != tc.want {
				t.Fatalf("want %d, got %d", tc.want, code)
			}
		})
	}
}

func TestDevMiddlewareDefaultsToAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := DevMiddleware()(func(c echo.Context) error {
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != RoleAdmin {
			t.Errorf("roles = %v", roles)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
}
