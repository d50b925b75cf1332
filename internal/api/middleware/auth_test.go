package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
	"github.com/shoplite/catalog-system/pkg/token"
)

func testGatekeeper() (*gatekeeper.Gatekeeper, *token.Codec) {
	codec := token.NewCodec("secret", time.Hour)
	return gatekeeper.New(codec), codec
}

func TestRequire_ValidToken(t *testing.T) {
	e := echo.New()
	gk, codec := testGatekeeper()

	raw, _, err := codec.Encode("alice", []string{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Require(gk, gatekeeper.Authenticated())(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.Subject != "alice" || !id.HasAnyRole(domain.RoleAdmin) {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequire_MissingHeader(t *testing.T) {
	e := echo.New()
	gk, _ := testGatekeeper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(gk, gatekeeper.Authenticated())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	gk, codec := testGatekeeper()

	raw, _, _ := codec.Encode("alice", []string{domain.RoleUser})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(gk, gatekeeper.Authenticated())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_InsufficientRoleIs403(t *testing.T) {
	e := echo.New()
	gk, codec := testGatekeeper()

	raw, _, _ := codec.Encode("bob", []string{domain.RoleUser})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(gk, gatekeeper.AnyRole(domain.RoleAdmin))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequire_ExpiredTokenIs401(t *testing.T) {
	e := echo.New()
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := token.NewCodec("secret", time.Hour).WithClock(func() time.Time { return issuedAt })
	raw, _, _ := codec.Encode("alice", []string{domain.RoleAdmin})
	codec.WithClock(time.Now)
	gk := gatekeeper.New(codec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Require(gk, gatekeeper.Authenticated())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequire_NoneSkipsTokenChecks(t *testing.T) {
	e := echo.New()
	gk, _ := testGatekeeper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Require(gk, gatekeeper.None())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("public route should pass through, got %d", rec.Code)
	}
}
